// Package module wires preload into the API using modkit
package module

import (
	"net/http"
	"time"

	modkit "lingo/internal/modkit"
	"lingo/internal/modkit/httpkit"
	str "lingo/internal/platform/strings"
	preloadhttp "lingo/internal/services/api/preload/http"
	preloadrepo "lingo/internal/services/api/preload/repo"
	preloadsvc "lingo/internal/services/api/preload/service"
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

	svc preloadsvc.Service
}

// New constructs a preload module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("preload"), modkit.WithPrefix("/preload")}, opts...)...)

	bundles := preloadrepo.NewFS(deps.Cfg.MayString("PRELOAD_BUNDLE_DIR", "./bundles"))
	svc := preloadsvc.New(
		deps.Cache,
		bundles,
		preloadsvc.WithStepDelay(deps.Cfg.MayDuration("PRELOAD_STEP_DELAY", preloadsvc.DefaultStepDelay)),
		preloadsvc.WithBundleTTL(deps.Cfg.MayDuration("PRELOAD_BUNDLE_TTL", time.Hour)),
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
	m.ports = adaptPreloadPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		preloadhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
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
