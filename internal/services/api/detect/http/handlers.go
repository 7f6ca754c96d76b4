// Package http provides http transport for detect
package http

import (
	stdhttp "net/http"

	"lingo/internal/modkit/httpkit"
	"lingo/internal/platform/net/middleware"
	"lingo/internal/services/api/detect/domain"
	svc "lingo/internal/services/api/detect/service"
)

// Register mounts detect endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.DetectInput](r, "/", h.detect)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /detect Detect detectLocale
// @Summary Resolve a locale from language signals
// @Tags Detect
// @Accept json
// @Produce json
// @Param payload body domain.DetectInput true "Signals"
// @Success 200 type domain.DetectResult ok
// @Router /detect [post]
func (h *handlers) detect(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	// the request's own headers back-fill omitted signals
	if in.AcceptLanguage == "" {
		in.AcceptLanguage = r.Header.Get("Accept-Language")
	}
	if in.Country == "" {
		in.Country = r.Header.Get(middleware.CountryHeader)
	}
	return h.svc.Detect(r.Context(), in)
}
