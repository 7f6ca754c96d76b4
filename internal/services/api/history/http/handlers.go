// Package http provides http transport for history
package http

import (
	"encoding/json"
	"io"
	stdhttp "net/http"

	"lingo/internal/modkit/httpkit"
	perr "lingo/internal/platform/errors"
	"lingo/internal/services/api/history/domain"
	svc "lingo/internal/services/api/history/service"

	"lingo/internal/core/locale"
)

// Register mounts history endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/{subject}", h.get)
	httpkit.Delete(r, "/{subject}", h.clear)
	httpkit.Get(r, "/{subject}/export", h.export)
	httpkit.Post(r, "/{subject}/import", h.importDoc)
	httpkit.PostJSON[domain.RecordInput](r, "/{subject}/record", h.record)
	httpkit.PostJSON[domain.StatsInput](r, "/stats", h.stats)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /history/{subject} History historyGet
// @Summary Detection history for a subject
// @Tags History
// @Produce json
// @Success 200 type domain.DetectionHistory ok
// @Router /history/{subject} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "subject"))
}

// swagger:route DELETE /history/{subject} History historyClear
// @Summary Clear detection history for a subject
// @Tags History
// @Produce json
// @Success 204 "cleared"
// @Router /history/{subject} [delete]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	if err := h.svc.Clear(r.Context(), httpkit.Param(r, "subject")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// swagger:route POST /history/{subject}/record History historyRecord
// @Summary Append a detection to a subject's history
// @Tags History
// @Accept json
// @Produce json
// @Param payload body domain.RecordInput true "Detection"
// @Success 200 type domain.DetectionHistory ok
// @Router /history/{subject}/record [post]
func (h *handlers) record(r *stdhttp.Request, in domain.RecordInput) (any, error) {
	loc, ok := locale.Parse(in.Locale)
	if !ok {
		return nil, perr.InvalidArgf("unsupported locale %q", in.Locale)
	}
	rec := domain.DetectionRecord{
		Locale:     loc,
		Source:     locale.Source(in.Source),
		Confidence: in.Confidence,
		Timestamp:  in.Timestamp,
	}
	return h.svc.Record(r.Context(), httpkit.Param(r, "subject"), rec)
}

// swagger:route GET /history/{subject}/export History historyExport
// @Summary Export a subject's history as a snapshot
// @Tags History
// @Produce json
// @Success 200 type domain.Snapshot ok
// @Router /history/{subject}/export [get]
func (h *handlers) export(r *stdhttp.Request) (any, error) {
	return h.svc.Export(r.Context(), httpkit.Param(r, "subject"))
}

// swagger:route POST /history/{subject}/import History historyImport
// @Summary Replace a subject's history from a serialized document
// @Tags History
// @Accept json
// @Produce json
// @Success 200 type domain.DetectionHistory ok
// @Router /history/{subject}/import [post]
// importDoc takes the raw body so the service can report shape and parse
// problems separately
func (h *handlers) importDoc(r *stdhttp.Request) (any, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, perr.InvalidArgf("unreadable request body")
	}
	if !json.Valid(raw) {
		return nil, perr.JSONErrf("invalid history JSON")
	}
	return h.svc.Import(r.Context(), httpkit.Param(r, "subject"), raw)
}

// swagger:route POST /history/stats History historyStats
// @Summary Daily detection aggregates by locale and source
// @Tags History
// @Accept json
// @Produce json
// @Param payload body domain.StatsInput true "Filters"
// @Success 200 {array} domain.StatsRow "ok"
// @Router /history/stats [post]
func (h *handlers) stats(r *stdhttp.Request, in domain.StatsInput) (any, error) {
	return h.svc.Stats(r.Context(), in)
}
