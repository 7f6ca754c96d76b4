package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"lingo/internal/modkit/httpkit"
	"lingo/internal/platform/cache"
	perr "lingo/internal/platform/errors"
	phttp "lingo/internal/platform/net/http"
	invsvc "lingo/internal/services/api/invalidation/service"
)

const testSecret = "s3cret"

func newServer(t *testing.T, withAuth bool) (*httptest.Server, *cache.Memory) {
	t.Helper()

	mem := cache.NewMemory(0)
	t.Cleanup(func() { _ = mem.Close() })

	var auth = httpkit.NewPortFunc(func(token string) (string, string, error) {
		if token != testSecret {
			return "", "", perr.Unauthorizedf("invalid bearer token")
		}
		return "cache-admin", "", nil
	})

	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Route("/cache", func(rr httpkit.Router) {
		if withAuth {
			Register(rr, invsvc.New(mem), auth)
		} else {
			Register(rr, invsvc.New(mem), nil)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, mem
}

func post(t *testing.T, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestUsage_OpenAndSideEffectFree(t *testing.T) {
	t.Parallel()

	srv, mem := newServer(t, true)
	if err := mem.Set(context.Background(), "i18n:en", []byte("x"), time.Minute, "i18n"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp, err := http.Get(srv.URL + "/cache/invalidate")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 without auth", resp.StatusCode)
	}
	var env phttp.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data == nil {
		t.Fatal("usage doc missing from envelope")
	}
	if mem.Len() != 1 {
		t.Fatal("GET must not evict anything")
	}
}

func TestInvalidate_RequiresBearer(t *testing.T) {
	t.Parallel()

	srv, mem := newServer(t, true)
	if err := mem.Set(context.Background(), "i18n:en", []byte("x"), time.Minute, "i18n"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"wrong token", "nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/cache/invalidate", tc.token, `{"domain":"i18n"}`)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
	if mem.Len() != 1 {
		t.Fatal("unauthorized request must not evict")
	}
}

func TestInvalidate_Authorized(t *testing.T) {
	t.Parallel()

	srv, mem := newServer(t, true)
	ctx := context.Background()
	if err := mem.Set(ctx, "i18n:en:critical", []byte("x"), time.Minute, "i18n", "i18n:en"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := post(t, srv.URL+"/cache/invalidate", testSecret, `{"domain":"i18n","locale":"en"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var env struct {
		Data struct {
			Success         bool     `json:"success"`
			RunID           string   `json:"run_id"`
			InvalidatedTags []string `json:"invalidated_tags"`
			Evicted         int      `json:"evicted"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Data.Success || env.Data.RunID == "" || env.Data.Evicted != 1 {
		t.Fatalf("result = %+v", env.Data)
	}
	if mem.Len() != 0 {
		t.Fatalf("cache len = %d, want 0", mem.Len())
	}
}

func TestInvalidate_ValidationErrors(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t, true)

	cases := []struct {
		name string
		body string
	}{
		{"malformed body", `{broken`},
		{"content without locale", `{"domain":"content"}`},
		{"unknown domain", `{"domain":"media"}`},
		{"unsupported locale", `{"domain":"i18n","locale":"de"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/cache/invalidate", testSecret, tc.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestInvalidate_DevBypassSkipsAuth(t *testing.T) {
	t.Parallel()

	srv, mem := newServer(t, false)
	if err := mem.Set(context.Background(), "i18n:en", []byte("x"), time.Minute, "i18n"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := post(t, srv.URL+"/cache/invalidate", "", `{"domain":"i18n"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 without auth in bypass mode", resp.StatusCode)
	}
	if mem.Len() != 0 {
		t.Fatal("bypass request should evict")
	}
}
