package service

import (
	"context"
	"reflect"
	"sort"
	"testing"
	"time"

	"lingo/internal/platform/cache"
	perr "lingo/internal/platform/errors"
	"lingo/internal/services/api/invalidation/domain"
)

func TestTagsFor_Routing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   domain.InvalidateInput
		want []string
	}{
		{"i18n all", domain.InvalidateInput{Domain: "i18n"}, []string{"i18n"}},
		{"i18n locale", domain.InvalidateInput{Domain: "i18n", Locale: "en"}, []string{"i18n:en"}},
		{"i18n entity", domain.InvalidateInput{Domain: "i18n", Locale: "en", Entity: "critical"}, []string{"i18n:en:critical"}},
		{"i18n odd entity widens", domain.InvalidateInput{Domain: "i18n", Locale: "en", Entity: "menu"}, []string{"i18n:en"}},
		{"content whole locale", domain.InvalidateInput{Domain: "content", Locale: "zh"}, []string{"content:zh"}},
		{"content blog post", domain.InvalidateInput{Domain: "content", Locale: "en", Entity: "blog", Identifier: "launch"}, []string{"content:en:blog:launch"}},
		{"content page", domain.InvalidateInput{Domain: "content", Locale: "en", Entity: "page", Identifier: "about"}, []string{"content:en:page:about"}},
		{"content blog without id widens", domain.InvalidateInput{Domain: "content", Locale: "en", Entity: "blog"}, []string{"content:en"}},
		{"product detail with id", domain.InvalidateInput{Domain: "product", Locale: "en", Entity: "detail", Identifier: "sku-1"}, []string{"product:en:detail:sku-1"}},
		{"product detail bare", domain.InvalidateInput{Domain: "product", Locale: "en", Entity: "detail"}, []string{"product:en:detail"}},
		{"product categories", domain.InvalidateInput{Domain: "product", Locale: "en", Entity: "categories"}, []string{"product:en:categories"}},
		{"product whole locale", domain.InvalidateInput{Domain: "product", Locale: "en"}, []string{"product:en"}},
		{"all one locale", domain.InvalidateInput{Domain: "all", Locale: "en"}, []string{"i18n:en", "content:en", "product:en"}},
		{
			"all every locale",
			domain.InvalidateInput{Domain: "all"},
			[]string{"content:en", "content:zh", "i18n:en", "i18n:zh", "product:en", "product:zh"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tagsFor(tc.in)
			if err != nil {
				t.Fatalf("tagsFor: %v", err)
			}
			a := append([]string(nil), got...)
			b := append([]string(nil), tc.want...)
			sort.Strings(a)
			sort.Strings(b)
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("tags = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTagsFor_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   domain.InvalidateInput
	}{
		{"content without locale", domain.InvalidateInput{Domain: "content"}},
		{"product without locale", domain.InvalidateInput{Domain: "product"}},
		{"unknown domain", domain.InvalidateInput{Domain: "media"}},
		{"unknown locale", domain.InvalidateInput{Domain: "i18n", Locale: "de"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tagsFor(tc.in); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
				t.Fatalf("err = %v, want invalid argument", err)
			}
		})
	}

	if _, err := tagsFor(domain.InvalidateInput{Domain: "content"}); err.Error() != "locale required for content invalidation" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestInvalidate_EvictsAndAggregates(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemory(0)
	t.Cleanup(func() { _ = mem.Close() })
	ctx := context.Background()

	seed := func(key string, tags ...string) {
		if err := mem.Set(ctx, key, []byte("x"), time.Minute, tags...); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}
	seed("i18n:en:critical", "i18n", "i18n:en", "i18n:en:critical")
	seed("i18n:en:deferred", "i18n", "i18n:en", "i18n:en:deferred")
	seed("i18n:zh:critical", "i18n", "i18n:zh", "i18n:zh:critical")

	s := New(mem)
	out, err := s.Invalidate(ctx, domain.InvalidateInput{Domain: "i18n", Locale: "en"})
	if err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if !out.Success || out.RunID == "" {
		t.Fatalf("result = %+v", out)
	}
	if out.Evicted != 2 {
		t.Fatalf("evicted = %d, want 2", out.Evicted)
	}
	if mem.Len() != 1 {
		t.Fatalf("cache len = %d, want the zh entry to survive", mem.Len())
	}
}

// failCache returns an error for one specific tag
type failCache struct {
	cache.TagCache
	badTag string
}

func (f failCache) InvalidateTag(ctx context.Context, tag string) (int, error) {
	if tag == f.badTag {
		return 0, perr.Unavailablef("backend down")
	}
	return f.TagCache.InvalidateTag(ctx, tag)
}

func TestInvalidate_PartialFailure(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemory(0)
	t.Cleanup(func() { _ = mem.Close() })
	ctx := context.Background()

	if err := mem.Set(ctx, "content:en", []byte("x"), time.Minute, "content:en"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := New(failCache{TagCache: mem, badTag: "i18n:en"})
	out, err := s.Invalidate(ctx, domain.InvalidateInput{Domain: "all", Locale: "en"})
	if err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if out.Success {
		t.Fatal("partial failure must not report success")
	}
	if len(out.Errors) != 1 {
		t.Fatalf("errors = %v, want 1", out.Errors)
	}
	if out.Evicted != 1 {
		t.Fatalf("evicted = %d, want the content tag to still land", out.Evicted)
	}
}
