// Package service contains invalidation workflows
package service

import (
	"context"

	"github.com/google/uuid"

	"lingo/internal/core/locale"
	"lingo/internal/platform/cache"
	perr "lingo/internal/platform/errors"
	"lingo/internal/platform/logger"
	"lingo/internal/services/api/invalidation/domain"
)

// Service defines the service contract for invalidation
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	cache cache.TagCache
}

// New creates a new invalidation service
func New(tc cache.TagCache) *Svc {
	if tc == nil {
		panic("invalidation.Service requires a non nil TagCache")
	}
	return &Svc{cache: tc}
}

// Invalidate evicts the tags selected by in and aggregates per-tag failures
// input problems surface as 400s, cache failures land in the result errors
func (s *Svc) Invalidate(ctx context.Context, in domain.InvalidateInput) (domain.InvalidateResult, error) {
	tags, err := tagsFor(in)
	if err != nil {
		return domain.InvalidateResult{}, err
	}

	evicted, errs := cache.InvalidateTags(ctx, s.cache, tags)
	out := domain.InvalidateResult{
		Success:         len(errs) == 0,
		RunID:           uuid.NewString(),
		InvalidatedTags: tags,
		Evicted:         evicted,
	}
	for _, e := range errs {
		logger.C(ctx).Error().Err(e).Str("run_id", out.RunID).Msg("invalidation: tag eviction failed")
		out.Errors = append(out.Errors, e.Error())
	}
	return out, nil
}

// Usage describes the endpoint contract
func (s *Svc) Usage() domain.Usage {
	return domain.Usage{
		Method: "POST",
		Auth:   "Bearer token from CACHE_INVALIDATION_SECRET",
		Domains: map[string]string{
			"i18n":    "locale bundles, optional locale and entity (critical|deferred)",
			"content": "rendered content, locale required, entity blog|page narrows with identifier",
			"product": "product pages, locale required, entity detail|categories|featured",
			"all":     "every domain, optionally scoped to one locale",
		},
		Example: domain.InvalidateInput{Domain: "i18n", Locale: "en", Entity: "critical"},
	}
}

// tagsFor maps an input to the concrete tag set to evict
func tagsFor(in domain.InvalidateInput) ([]string, error) {
	loc := ""
	if in.Locale != "" {
		l, ok := locale.Parse(in.Locale)
		if !ok {
			return nil, perr.InvalidArgf("unsupported locale %q", in.Locale)
		}
		loc = string(l)
	}

	switch in.Domain {
	case "i18n":
		return i18nTags(loc, in.Entity), nil
	case "content":
		if loc == "" {
			return nil, perr.InvalidArgf("locale required for content invalidation")
		}
		return contentTags(loc, in.Entity, in.Identifier), nil
	case "product":
		if loc == "" {
			return nil, perr.InvalidArgf("locale required for product invalidation")
		}
		return productTags(loc, in.Entity, in.Identifier), nil
	case "all":
		if loc != "" {
			return allTagsForLocale(loc), nil
		}
		var tags []string
		for _, l := range locale.Supported() {
			tags = append(tags, allTagsForLocale(string(l))...)
		}
		return tags, nil
	default:
		return nil, perr.InvalidArgf("unknown invalidation domain %q", in.Domain)
	}
}

func i18nTags(loc, entity string) []string {
	if loc == "" {
		return []string{"i18n"}
	}
	switch entity {
	case "critical", "deferred":
		return []string{"i18n:" + loc + ":" + entity}
	default:
		return []string{"i18n:" + loc}
	}
}

func contentTags(loc, entity, id string) []string {
	switch {
	case entity == "blog" && id != "":
		return []string{"content:" + loc + ":blog:" + id}
	case entity == "page" && id != "":
		return []string{"content:" + loc + ":page:" + id}
	default:
		return []string{"content:" + loc}
	}
}

func productTags(loc, entity, id string) []string {
	switch entity {
	case "detail":
		if id != "" {
			return []string{"product:" + loc + ":detail:" + id}
		}
		return []string{"product:" + loc + ":detail"}
	case "categories", "featured":
		return []string{"product:" + loc + ":" + entity}
	default:
		return []string{"product:" + loc}
	}
}

func allTagsForLocale(loc string) []string {
	return []string{"i18n:" + loc, "content:" + loc, "product:" + loc}
}
