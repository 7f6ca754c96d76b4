// Package module wires detect into the API using modkit
package module

import (
	"net/http"

	modkit "lingo/internal/modkit"
	"lingo/internal/modkit/httpkit"
	str "lingo/internal/platform/strings"
	detecthttp "lingo/internal/services/api/detect/http"
	detectsvc "lingo/internal/services/api/detect/service"
	historydom "lingo/internal/services/api/history/domain"
)

// Ports declares the injected history port this module records through
type Ports struct {
	Recorder historydom.RecorderPort
}

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

	svc detectsvc.Service
}

// New constructs a detect module with the provided dependencies and options
// the Recorder port is optional, without it detections are not persisted
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("detect"), modkit.WithPrefix("/detect")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	svc := detectsvc.New(injected.Recorder)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptDetectPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		detecthttp.Register(r, m.svc)
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
