// Package api provides the HTTP API for the application
package api

import (
	"context"
	"fmt"

	"lingo/internal/platform/config"
	"lingo/internal/platform/logger"
	phttp "lingo/internal/platform/net/http"
	"lingo/internal/platform/net/middleware"
	"lingo/internal/platform/store"

	"lingo/internal/modkit"
	"lingo/internal/modkit/httpkit"
	"lingo/internal/modkit/module"
	"lingo/internal/modkit/repokit"
	"lingo/internal/modkit/swaggerkit"

	detectmod "lingo/internal/services/api/detect/module"
	detectsvc "lingo/internal/services/api/detect/service"
	historymod "lingo/internal/services/api/history/module"
	invalidationmod "lingo/internal/services/api/invalidation/module"
	metamod "lingo/internal/services/api/meta/module"
	preloadmod "lingo/internal/services/api/preload/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// optional per-tx statement timeout so one slow upsert can't hold a worker
	pg := opt.Store.PG
	if ms := opt.Config.MayInt("PG_STMT_TIMEOUT_MS", 0); ms > 0 && pg != nil {
		pg = repokit.WithBeginHooks(pg, func(ctx context.Context, q repokit.Queryer) error {
			_, err := q.Exec(ctx, fmt.Sprintf("set local statement_timeout = %d", ms))
			return err
		})
	}

	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		PG:    pg,
		CH:    opt.Store.CH,
		Cache: opt.Store.Cache,
	}

	// Construct history first and hand its recorder port to detect
	history := historymod.New(deps)
	recorder := module.MustPortsOf[historymod.Ports](history).Recorder

	detect := detectmod.New(
		deps,
		modkit.WithPorts(detectmod.Ports{
			Recorder: recorder,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		history,
		detect,
		preloadmod.New(deps),
		invalidationmod.New(deps),
	}

	// versioned API with a common middleware stack
	stack := append(
		httpkit.CommonStack(),
		middleware.LocaleResolver(detectsvc.ResolveCode),
	)
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
