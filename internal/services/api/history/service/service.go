// Package service contains history workflows
package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"lingo/internal/core/locale"
	"lingo/internal/modkit/repokit"
	perr "lingo/internal/platform/errors"
	"lingo/internal/platform/logger"
	"lingo/internal/platform/store"
	"lingo/internal/services/api/history/domain"
	"lingo/internal/services/api/history/repo"
)

// DefaultMaxEntries caps the detections kept per subject
const DefaultMaxEntries = 50

// Service defines the service contract for history
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	ch     store.Clickhouse

	maxEntries int
	nowMS      func() int64

	mu    sync.RWMutex
	cache map[string]domain.DetectionHistory
}

// Option tweaks service construction
type Option func(*Svc)

// WithMaxEntries overrides the per-subject detection cap
func WithMaxEntries(n int) Option {
	return func(s *Svc) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithClickhouse attaches the analytics sink, nil disables mirroring
func WithClickhouse(ch store.Clickhouse) Option {
	return func(s *Svc) { s.ch = ch }
}

// WithClock overrides the millisecond clock
func WithClock(now func() int64) Option {
	return func(s *Svc) {
		if now != nil {
			s.nowMS = now
		}
	}
}

// New creates a new history service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts ...Option) *Svc {
	if db == nil {
		panic("history.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("history.Service requires a non nil Repo binder")
	}
	s := &Svc{
		Repo:       binder.Bind(db),
		binder:     binder,
		db:         db,
		maxEntries: DefaultMaxEntries,
		nowMS:      func() int64 { return time.Now().UnixMilli() },
		cache:      make(map[string]domain.DetectionHistory),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Record validates and appends a detection, evicting oldest entries past the cap
func (s *Svc) Record(ctx context.Context, subject string, rec domain.DetectionRecord) (domain.DetectionHistory, error) {
	if subject == "" {
		return domain.DetectionHistory{}, perr.InvalidArgf("subject is required")
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = s.nowMS()
	}
	if err := validateRecord(rec); err != nil {
		return domain.DetectionHistory{}, err
	}

	h, err := s.load(ctx, subject)
	if err != nil {
		return domain.DetectionHistory{}, err
	}

	h.Detections = append(h.Detections, rec)
	if over := len(h.Detections) - s.maxEntries; over > 0 {
		h.Detections = append([]domain.DetectionRecord(nil), h.Detections[over:]...)
	}
	h.TotalDetections++
	if rec.Timestamp > h.LastUpdated {
		h.LastUpdated = rec.Timestamp
	}

	if err := s.persist(ctx, subject, h); err != nil {
		return domain.DetectionHistory{}, err
	}
	s.mirror(ctx, subject, rec)
	return h, nil
}

// Get returns the history for a subject, empty when none exists
func (s *Svc) Get(ctx context.Context, subject string) (domain.DetectionHistory, error) {
	if subject == "" {
		return domain.DetectionHistory{}, perr.InvalidArgf("subject is required")
	}
	return s.load(ctx, subject)
}

// Clear removes the history for a subject
func (s *Svc) Clear(ctx context.Context, subject string) error {
	if subject == "" {
		return perr.InvalidArgf("subject is required")
	}
	if err := s.Repo.Delete(ctx, subject); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.cache, subject)
	s.mu.Unlock()
	return nil
}

// Export snapshots the current history with a fresh snapshot id
func (s *Svc) Export(ctx context.Context, subject string) (domain.Snapshot, error) {
	h, err := s.Get(ctx, subject)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{
		ID:         uuid.NewString(),
		Subject:    subject,
		ExportedAt: s.nowMS(),
		History:    h,
	}, nil
}

// importPayload accepts both the canonical field and its legacy alias
type importPayload struct {
	Detections      []domain.DetectionRecord `json:"detections"`
	History         []domain.DetectionRecord `json:"history"`
	LastUpdated     int64                    `json:"last_updated"`
	TotalDetections int                      `json:"total_detections"`
}

// Import replaces the history for a subject from a serialized document
// the write is all-or-nothing, invalid payloads leave stored state untouched
func (s *Svc) Import(ctx context.Context, subject string, raw []byte) (domain.DetectionHistory, error) {
	if subject == "" {
		return domain.DetectionHistory{}, perr.InvalidArgf("subject is required")
	}
	var p importPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.DetectionHistory{}, perr.JSONErrf("invalid history JSON: %v", err)
	}

	dets := p.Detections
	if dets == nil {
		dets = p.History
	} else if p.History != nil && len(p.History) != len(p.Detections) {
		return domain.DetectionHistory{}, perr.InvalidArgf("invalid history data format")
	}

	h := domain.DetectionHistory{
		Detections:      dets,
		LastUpdated:     p.LastUpdated,
		TotalDetections: p.TotalDetections,
	}
	if err := Validate(h); err != nil {
		return domain.DetectionHistory{}, err
	}
	if over := len(h.Detections) - s.maxEntries; over > 0 {
		h.Detections = append([]domain.DetectionRecord(nil), h.Detections[over:]...)
	}
	if err := s.persist(ctx, subject, h); err != nil {
		return domain.DetectionHistory{}, err
	}
	return h, nil
}

// Stats aggregates mirrored detections by day, locale, and source
func (s *Svc) Stats(ctx context.Context, in domain.StatsInput) ([]domain.StatsRow, error) {
	if s.ch == nil {
		return nil, perr.Unavailablef("detection analytics are not enabled")
	}
	days := in.Days
	if days <= 0 {
		days = 7
	}
	const sql = `
select toString(toDate(ts)) as day, locale, source, count() as n
from locale_detections
where ts >= now() - interval ? day
  and (? = '' or locale = ?)
group by day, locale, source
order by day desc, n desc
`
	rows, err := s.ch.Query(ctx, sql, days, in.Locale, in.Locale)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "detection stats query")
	}
	defer rows.Close()

	var out []domain.StatsRow
	for rows.Next() {
		var r domain.StatsRow
		if err := rows.Scan(&r.Day, &r.Locale, &r.Source, &r.Count); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "detection stats scan")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ClearCache drops the in-process read-through cache
func (s *Svc) ClearCache() {
	s.mu.Lock()
	s.cache = make(map[string]domain.DetectionHistory)
	s.mu.Unlock()
}

// Validate checks a history document for structural soundness
func Validate(h domain.DetectionHistory) error {
	if h.TotalDetections < len(h.Detections) {
		return perr.InvalidArgf("invalid history data format")
	}
	for _, d := range h.Detections {
		if err := validateRecord(d); err != nil {
			return perr.InvalidArgf("invalid history data format")
		}
		if d.Timestamp > h.LastUpdated {
			return perr.InvalidArgf("invalid history data format")
		}
	}
	return nil
}

func validateRecord(rec domain.DetectionRecord) error {
	if !locale.Valid(rec.Locale) {
		return perr.InvalidArgf("unsupported locale %q", string(rec.Locale))
	}
	if !locale.ValidSource(rec.Source) {
		return perr.InvalidArgf("unknown detection source %q", string(rec.Source))
	}
	if rec.Confidence < 0 || rec.Confidence > 1 {
		return perr.InvalidArgf("confidence out of range")
	}
	if rec.Timestamp <= 0 {
		return perr.InvalidArgf("timestamp is required")
	}
	return nil
}

// load consults the read-through cache before hitting storage
func (s *Svc) load(ctx context.Context, subject string) (domain.DetectionHistory, error) {
	s.mu.RLock()
	h, ok := s.cache[subject]
	s.mu.RUnlock()
	if ok {
		return h, nil
	}

	doc, found, err := s.Repo.Get(ctx, subject)
	if err != nil {
		return domain.DetectionHistory{}, err
	}
	if !found {
		return domain.DetectionHistory{Detections: []domain.DetectionRecord{}}, nil
	}
	if err := json.Unmarshal(doc, &h); err != nil {
		return domain.DetectionHistory{}, perr.Wrap(err, perr.ErrorCodeJSON, "stored history is corrupt")
	}
	s.mu.Lock()
	s.cache[subject] = h
	s.mu.Unlock()
	return h, nil
}

func (s *Svc) persist(ctx context.Context, subject string, h domain.DetectionHistory) error {
	doc, err := json.Marshal(h)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "history marshal")
	}
	if err := s.Repo.Put(ctx, subject, doc); err != nil {
		return err
	}
	s.mu.Lock()
	s.cache[subject] = h
	s.mu.Unlock()
	return nil
}

// mirror ships a detection to the analytics sink, failures are logged only
func (s *Svc) mirror(ctx context.Context, subject string, rec domain.DetectionRecord) {
	if s.ch == nil {
		return
	}
	const sql = `insert into locale_detections (subject, locale, source, confidence, ts) values (?, ?, ?, ?, fromUnixTimestamp64Milli(?))`
	if err := s.ch.AsyncInsert(ctx, sql, subject, string(rec.Locale), string(rec.Source), rec.Confidence, rec.Timestamp); err != nil {
		logger.C(ctx).Warn().Err(err).Str("subject", subject).Msg("history: detection mirror failed")
	}
}
