// Package http provides http transport for preload
package http

import (
	stdhttp "net/http"

	"lingo/internal/modkit/httpkit"
	"lingo/internal/services/api/preload/domain"
	svc "lingo/internal/services/api/preload/service"
)

// Register mounts preload endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.PlanInput](r, "/plan", h.plan)
	httpkit.PostJSON[domain.RunInput](r, "/run", h.run)
	httpkit.Get(r, "/strategies", h.strategies)
	httpkit.Post(r, "/stop", h.stop)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /preload/plan Preload preloadPlan
// @Summary Decide a warming strategy for the given conditions
// @Tags Preload
// @Accept json
// @Produce json
// @Param payload body domain.PlanInput true "Locales and signals"
// @Success 200 type domain.Plan ok
// @Router /preload/plan [post]
func (h *handlers) plan(r *stdhttp.Request, in domain.PlanInput) (any, error) {
	return h.svc.Plan(r.Context(), in)
}

// swagger:route POST /preload/run Preload preloadRun
// @Summary Warm locale bundles under a strategy
// @Tags Preload
// @Accept json
// @Produce json
// @Param payload body domain.RunInput true "Locales, signals, optional strategy"
// @Success 200 type domain.RunResult ok
// @Router /preload/run [post]
func (h *handlers) run(r *stdhttp.Request, in domain.RunInput) (any, error) {
	return h.svc.Run(r.Context(), in)
}

// swagger:route GET /preload/strategies Preload preloadStrategies
// @Summary List warming strategies and their standing priorities
// @Tags Preload
// @Produce json
// @Success 200 {array} domain.StrategyInfo "ok"
// @Router /preload/strategies [get]
func (h *handlers) strategies(_ *stdhttp.Request) (any, error) {
	return h.svc.Strategies(), nil
}

// swagger:route POST /preload/stop Preload preloadStop
// @Summary Abort an in-flight progressive warm pass
// @Tags Preload
// @Produce json
// @Success 200 "stopping"
// @Router /preload/stop [post]
func (h *handlers) stop(_ *stdhttp.Request) (any, error) {
	was := h.svc.IsPreloading()
	h.svc.Stop()
	return map[string]bool{"was_preloading": was}, nil
}
