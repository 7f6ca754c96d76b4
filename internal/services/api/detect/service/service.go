// Package service contains detect workflows
package service

import (
	"context"
	"time"

	"lingo/internal/core/locale"
	"lingo/internal/platform/logger"
	"lingo/internal/services/api/detect/domain"
	historydom "lingo/internal/services/api/history/domain"
)

// Service defines the service contract for detect
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	recorder historydom.RecorderPort
	nowMS    func() int64
}

// Option tweaks service construction
type Option func(*Svc)

// WithClock overrides the millisecond clock
func WithClock(now func() int64) Option {
	return func(s *Svc) {
		if now != nil {
			s.nowMS = now
		}
	}
}

// New creates a new detect service
// recorder may be nil when history recording is not wired
func New(recorder historydom.RecorderPort, opts ...Option) *Svc {
	s := &Svc{recorder: recorder, nowMS: func() int64 { return time.Now().UnixMilli() }}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Detect resolves the locale from the supplied signals and records the
// outcome for the subject when one is given
func (s *Svc) Detect(ctx context.Context, in domain.DetectInput) (domain.DetectResult, error) {
	sig := locale.Signals{
		Country:        in.Country,
		AcceptLanguage: in.AcceptLanguage,
	}
	if in.Override != "" {
		if l, ok := locale.Parse(in.Override); ok {
			sig.Override = &l
		}
	}

	d := locale.Resolve(sig, locale.Options{})
	out := domain.DetectResult{
		Locale:     d.Locale,
		Source:     d.Source,
		Confidence: d.Confidence,
	}

	if in.Subject != "" && s.recorder != nil {
		rec := historydom.DetectionRecord{
			Locale:     d.Locale,
			Source:     d.Source,
			Confidence: d.Confidence,
			Timestamp:  s.nowMS(),
		}
		if _, err := s.recorder.Record(ctx, in.Subject, rec); err != nil {
			// recording is a side effect, the resolution still stands
			logger.C(ctx).Warn().Err(err).Str("subject", in.Subject).Msg("detect: history record failed")
		} else {
			out.Recorded = true
		}
	}
	return out, nil
}

// ResolveCode is the middleware seam, it maps raw header values to a code
func ResolveCode(acceptLanguage, country string) string {
	d := locale.Resolve(locale.Signals{
		Country:        country,
		AcceptLanguage: acceptLanguage,
	}, locale.Options{})
	return string(d.Locale)
}
