package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/service"
)

// SummaryHandler serves the derived event summary.
type SummaryHandler struct {
	svc *service.SummaryService
	log *zap.Logger
}

// NewSummaryHandler constructs a SummaryHandler.
func NewSummaryHandler(svc *service.SummaryService, log *zap.Logger) *SummaryHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SummaryHandler{svc: svc, log: log}
}

// GetSummary handles GET /events/{id}/summary
// The snapshot is recomputed before it is returned.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "event not found", "failed to compute summary")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// SetPrice handles PATCH /events/{id}/summary/price
// A null price clears it.
func (h *SummaryHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	var req model.SetPriceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	view, err := h.svc.SetHeadcountPrice(r.Context(), chi.URLParam(r, "id"), req.Price)
	if err != nil {
		writeServiceError(w, h.log, err, "event not found", "failed to update price")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Refresh handles POST /events/{id}/summary/refresh
func (h *SummaryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Refresh(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "event not found", "failed to compute summary")
		return
	}

	writeJSON(w, http.StatusOK, view)
}
