package service

import (
	"context"
	"encoding/json"

	"lingo/internal/core/locale"
	"lingo/internal/platform/logger"
)

// warm loads one locale bundle into the tag cache
// both sections are tagged so invalidation can target any granularity
func (s *Svc) warm(ctx context.Context, loc locale.Locale) error {
	b, err := s.bundles.Load(ctx, loc)
	if err != nil {
		s.metrics.Observe(false)
		return err
	}

	sections := map[string]map[string]json.RawMessage{
		"critical": b.Critical,
		"deferred": b.Deferred,
	}
	for entity, msgs := range sections {
		if len(msgs) == 0 {
			continue
		}
		val, err := json.Marshal(msgs)
		if err != nil {
			s.metrics.Observe(false)
			return err
		}
		key := "i18n:" + string(loc) + ":" + entity
		tags := []string{"i18n", "i18n:" + string(loc), key}
		if err := s.cache.Set(ctx, key, val, s.ttl, tags...); err != nil {
			s.metrics.Observe(false)
			return err
		}
	}

	s.metrics.Observe(true)
	logger.C(ctx).Debug().Str("locale", string(loc)).Msg("preload: bundle warmed")
	return nil
}
