// Package module wires invalidation into the API using modkit
package module

import (
	"crypto/subtle"
	"net/http"

	modkit "lingo/internal/modkit"
	"lingo/internal/modkit/httpkit"
	perr "lingo/internal/platform/errors"
	"lingo/internal/platform/net/middleware"
	str "lingo/internal/platform/strings"
	invhttp "lingo/internal/services/api/invalidation/http"
	invsvc "lingo/internal/services/api/invalidation/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc invsvc.Service
}

// New constructs an invalidation module with the provided dependencies and options
// the bearer secret comes from CACHE_INVALIDATION_SECRET under the service
// config prefix; with no secret the endpoint only opens when ENV=development
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("invalidation"), modkit.WithPrefix("/cache")}, opts...)...)

	svc := invsvc.New(deps.Cache)
	auth := authPort(
		deps.Cfg.MayString("CACHE_INVALIDATION_SECRET", ""),
		deps.Cfg.MayString("ENV", "development"),
	)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptInvalidationPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		invhttp.Register(r, m.svc, auth)
		if external != nil {
			external(r)
		}
	}
	return m
}

// authPort builds the bearer check, nil means the development bypass applies
func authPort(secret, env string) middleware.AuthPort {
	if secret == "" {
		if env == "development" {
			return nil
		}
		// no secret outside development locks the endpoint shut
		return httpkit.NewPortFunc(func(string) (string, string, error) {
			return "", "", perr.Unauthorizedf("invalidation secret is not configured")
		})
	}
	return httpkit.NewPortFunc(func(token string) (string, string, error) {
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			return "", "", perr.Unauthorizedf("invalid bearer token")
		}
		return "cache-admin", "", nil
	})
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
