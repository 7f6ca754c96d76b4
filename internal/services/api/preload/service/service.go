// Package service contains preload workflows
package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"lingo/internal/core/locale"
	"lingo/internal/platform/cache"
	perr "lingo/internal/platform/errors"
	"lingo/internal/platform/logger"
	"lingo/internal/services/api/preload/domain"
	"lingo/internal/services/api/preload/repo"
)

// DefaultStepDelay paces the progressive runner between locales
const DefaultStepDelay = 500 * time.Millisecond

// DefaultBundleTTL bounds how long warmed bundles stay cached
const DefaultBundleTTL = time.Hour

// localePriority is the fixed table for the priority strategy
// lower number means warmed earlier
func localePriority(loc locale.Locale) int {
	for i, l := range locale.Supported() {
		if l == loc {
			return i + 1
		}
	}
	return len(locale.Supported()) + 1
}

// runner executes one strategy over an ordered locale list
// runners never return errors, failures are logged and counted only
type runner func(ctx context.Context, locs []locale.Locale) (warmed, skipped []locale.Locale)

// Service defines the service contract for preload
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	cache   cache.TagCache
	bundles repo.Loader
	caps    Capabilities
	metrics *metricsWindow

	stepDelay time.Duration
	ttl       time.Duration
	nowHour   func() int

	running atomic.Bool
	runners map[domain.Strategy]runner
}

// Option tweaks service construction
type Option func(*Svc)

// WithCapabilities overrides the environment probes
func WithCapabilities(c Capabilities) Option {
	return func(s *Svc) {
		if c != nil {
			s.caps = c
		}
	}
}

// WithStepDelay overrides the progressive inter-step delay
func WithStepDelay(d time.Duration) Option {
	return func(s *Svc) {
		if d > 0 {
			s.stepDelay = d
		}
	}
}

// WithBundleTTL overrides how long warmed bundles stay cached
func WithBundleTTL(d time.Duration) Option {
	return func(s *Svc) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithClock overrides the local-hour clock
func WithClock(hour func() int) Option {
	return func(s *Svc) {
		if hour != nil {
			s.nowHour = hour
		}
	}
}

// New creates a new preload service
func New(tc cache.TagCache, bundles repo.Loader, opts ...Option) *Svc {
	if tc == nil {
		panic("preload.Service requires a non nil TagCache")
	}
	if bundles == nil {
		panic("preload.Service requires a non nil bundle Loader")
	}
	s := &Svc{
		cache:     tc,
		bundles:   bundles,
		caps:      serverCaps{},
		metrics:   newMetricsWindow(20),
		stepDelay: DefaultStepDelay,
		ttl:       DefaultBundleTTL,
		nowHour:   func() int { return time.Now().Hour() },
	}
	for _, o := range opts {
		o(s)
	}
	s.runners = map[domain.Strategy]runner{
		domain.StrategyImmediate:   s.runImmediate,
		domain.StrategySmart:       s.runSmart,
		domain.StrategyProgressive: s.runProgressive,
		domain.StrategyPriority:    s.runPriority,
		domain.StrategyLazy:        s.runLazy,
	}
	return s
}

// Plan decides a strategy for the given locales without warming anything
func (s *Svc) Plan(_ context.Context, in domain.PlanInput) (domain.Plan, error) {
	locs, err := parseLocales(in.Locales)
	if err != nil {
		return domain.Plan{}, err
	}
	c := s.conditions(in.Signals, s.nowHour())
	chosen, scores := domain.Choose(c)
	return domain.Plan{
		Strategy:   chosen,
		Scores:     scores,
		Conditions: c,
		Order:      planOrder(chosen, locs),
	}, nil
}

// Run warms bundles under the chosen or requested strategy
// warm failures are swallowed, only input errors surface
func (s *Svc) Run(ctx context.Context, in domain.RunInput) (domain.RunResult, error) {
	locs, err := parseLocales(in.Locales)
	if err != nil {
		return domain.RunResult{}, err
	}

	var chosen domain.Strategy
	if in.Strategy != "" {
		st, ok := domain.ParseStrategy(in.Strategy)
		if !ok {
			return domain.RunResult{}, perr.InvalidArgf("unknown strategy %q", in.Strategy)
		}
		chosen = st
	} else {
		chosen, _ = domain.Choose(s.conditions(in.Signals, s.nowHour()))
	}

	s.running.Store(true)
	defer s.running.Store(false)

	warmed, skipped := s.runners[chosen](ctx, locs)
	return domain.RunResult{Strategy: chosen, Warmed: warmed, Skipped: skipped}, nil
}

// Strategies lists every strategy with its standing priority
func (s *Svc) Strategies() []domain.StrategyInfo {
	desc := map[domain.Strategy]string{
		domain.StrategyImmediate:   "warm all requested locales concurrently",
		domain.StrategySmart:       "heuristic pass weighing success rate and time of day",
		domain.StrategyProgressive: "one locale at a time with a fixed delay, cancellable mid-flight",
		domain.StrategyPriority:    "warm by fixed locale priority, top group hinted high",
		domain.StrategyLazy:        "warm only the first listed locale",
	}
	out := make([]domain.StrategyInfo, 0, len(desc))
	for _, st := range domain.Strategies() {
		out = append(out, domain.StrategyInfo{
			Name:         st,
			BasePriority: domain.BasePriority(st),
			Description:  desc[st],
		})
	}
	return out
}

// IsPreloading reports whether a warm pass is in flight
func (s *Svc) IsPreloading() bool { return s.running.Load() }

// Stop aborts an in-flight progressive pass at its next step check
func (s *Svc) Stop() { s.running.Store(false) }

func parseLocales(raw []string) ([]locale.Locale, error) {
	if len(raw) == 0 {
		return locale.Supported(), nil
	}
	out := make([]locale.Locale, 0, len(raw))
	seen := map[locale.Locale]bool{}
	for _, r := range raw {
		loc, ok := locale.Parse(r)
		if !ok {
			return nil, perr.InvalidArgf("unsupported locale %q", r)
		}
		if !seen[loc] {
			seen[loc] = true
			out = append(out, loc)
		}
	}
	return out, nil
}

// planOrder projects the warm order a strategy would use
func planOrder(st domain.Strategy, locs []locale.Locale) []domain.PlanStep {
	ordered := append([]locale.Locale(nil), locs...)
	switch st {
	case domain.StrategyPriority:
		sort.SliceStable(ordered, func(i, j int) bool {
			return localePriority(ordered[i]) < localePriority(ordered[j])
		})
	case domain.StrategyLazy:
		if len(ordered) > 1 {
			ordered = ordered[:1]
		}
	}

	steps := make([]domain.PlanStep, 0, len(ordered))
	for _, loc := range ordered {
		p := "normal"
		if st == domain.StrategyPriority && localePriority(loc) == 1 {
			p = "high"
		}
		steps = append(steps, domain.PlanStep{Locale: loc, Priority: p})
	}
	return steps
}

func (s *Svc) runImmediate(ctx context.Context, locs []locale.Locale) ([]locale.Locale, []locale.Locale) {
	var (
		mu     sync.Mutex
		warmed []locale.Locale
		wg     sync.WaitGroup
	)
	for _, loc := range locs {
		wg.Add(1)
		go func(loc locale.Locale) {
			defer wg.Done()
			if err := s.warm(ctx, loc); err != nil {
				logger.C(ctx).Warn().Err(err).Str("locale", string(loc)).Msg("preload: immediate warm failed")
				return
			}
			mu.Lock()
			warmed = append(warmed, loc)
			mu.Unlock()
		}(loc)
	}
	wg.Wait()
	return warmed, nil
}

// runSmart trims the locale list by time of day, a poor recent success rate
// trims it further to the single first locale
func (s *Svc) runSmart(ctx context.Context, locs []locale.Locale) ([]locale.Locale, []locale.Locale) {
	keep := len(locs)
	switch domain.PeriodOfHour(s.nowHour()) {
	case domain.PeriodEvening:
		if keep > 2 {
			keep = 2
		}
	case domain.PeriodNight:
		keep = 1
	}
	if s.metrics.SuccessRate() < 0.5 {
		keep = 1
	}
	if keep > len(locs) {
		keep = len(locs)
	}

	var warmed []locale.Locale
	for _, loc := range locs[:keep] {
		if err := s.warm(ctx, loc); err != nil {
			logger.C(ctx).Warn().Err(err).Str("locale", string(loc)).Msg("preload: smart warm failed")
			continue
		}
		warmed = append(warmed, loc)
	}
	return warmed, append([]locale.Locale(nil), locs[keep:]...)
}

func (s *Svc) runProgressive(ctx context.Context, locs []locale.Locale) ([]locale.Locale, []locale.Locale) {
	var warmed []locale.Locale
	for i, loc := range locs {
		if !s.running.Load() || ctx.Err() != nil {
			return warmed, append([]locale.Locale(nil), locs[i:]...)
		}
		if i > 0 {
			select {
			case <-time.After(s.stepDelay):
			case <-ctx.Done():
				return warmed, append([]locale.Locale(nil), locs[i:]...)
			}
			if !s.running.Load() {
				return warmed, append([]locale.Locale(nil), locs[i:]...)
			}
		}
		if err := s.warm(ctx, loc); err != nil {
			logger.C(ctx).Warn().Err(err).Str("locale", string(loc)).Msg("preload: progressive warm failed")
			continue
		}
		warmed = append(warmed, loc)
	}
	return warmed, nil
}

func (s *Svc) runPriority(ctx context.Context, locs []locale.Locale) ([]locale.Locale, []locale.Locale) {
	ordered := append([]locale.Locale(nil), locs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return localePriority(ordered[i]) < localePriority(ordered[j])
	})
	var warmed []locale.Locale
	for _, loc := range ordered {
		if err := s.warm(ctx, loc); err != nil {
			logger.C(ctx).Warn().Err(err).Str("locale", string(loc)).Msg("preload: priority warm failed")
			continue
		}
		warmed = append(warmed, loc)
	}
	return warmed, nil
}

func (s *Svc) runLazy(ctx context.Context, locs []locale.Locale) ([]locale.Locale, []locale.Locale) {
	if len(locs) == 0 {
		return nil, nil
	}
	if err := s.warm(ctx, locs[0]); err != nil {
		logger.C(ctx).Warn().Err(err).Str("locale", string(locs[0])).Msg("preload: lazy warm failed")
		return nil, append([]locale.Locale(nil), locs[1:]...)
	}
	return []locale.Locale{locs[0]}, append([]locale.Locale(nil), locs[1:]...)
}
