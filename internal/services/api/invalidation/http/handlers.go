// Package http provides http transport for invalidation
package http

import (
	stdhttp "net/http"

	"lingo/internal/modkit/httpkit"
	"lingo/internal/platform/net/middleware"
	"lingo/internal/services/api/invalidation/domain"
	svc "lingo/internal/services/api/invalidation/service"
)

// Register mounts invalidation endpoints on the given router
// auth wraps only the POST, the usage doc stays open; a nil port skips auth
// entirely (development bypass)
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/invalidate", h.usage)
	if auth == nil {
		httpkit.PostJSON[domain.InvalidateInput](r, "/invalidate", h.invalidate)
		return
	}
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.InvalidateInput](pr, "/invalidate", h.invalidate)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /cache/invalidate Invalidation cacheInvalidate
// @Summary Evict tagged cache entries by domain and locale
// @Tags Invalidation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.InvalidateInput true "Scope"
// @Success 200 type domain.InvalidateResult ok
// @Router /cache/invalidate [post]
func (h *handlers) invalidate(r *stdhttp.Request, in domain.InvalidateInput) (any, error) {
	return h.svc.Invalidate(r.Context(), in)
}

// swagger:route GET /cache/invalidate Invalidation cacheInvalidateUsage
// @Summary Usage documentation for the invalidation endpoint
// @Tags Invalidation
// @Produce json
// @Success 200 type domain.Usage ok
// @Router /cache/invalidate [get]
func (h *handlers) usage(_ *stdhttp.Request) (any, error) {
	return h.svc.Usage(), nil
}
