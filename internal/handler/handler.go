// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/repository"
	"github.com/Shivanand-hulikatti/event-planner/internal/service"
)

// EventHandler holds the HTTP handlers for events and their record sets.
type EventHandler struct {
	svc *service.EventService
	log *zap.Logger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService, log *zap.Logger) *EventHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventHandler{svc: svc, log: log}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps a service error onto a status code. Storage
// failures are logged and reported with a generic message.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, notFound, failure string) {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error())
	default:
		log.Error(failure, zap.Error(err))
		writeError(w, http.StatusInternalServerError, failure)
	}
}

// ─── Events ───────────────────────────────────────────────────────────────────

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "event not found", "failed to create event")
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		h.log.Error("failed to list events", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "event not found", "failed to get event")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// ─── Guests ───────────────────────────────────────────────────────────────────

// CreateGroup handles POST /events/{id}/groups
func (h *EventHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req model.CreateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	group, err := h.svc.CreateGroup(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "event not found", "failed to create group")
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

// AddAttendee handles POST /events/{id}/attendees
func (h *EventHandler) AddAttendee(w http.ResponseWriter, r *http.Request) {
	var req model.AddAttendeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	attendee, err := h.svc.AddAttendee(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "event or group not found", "failed to add attendee")
		return
	}

	writeJSON(w, http.StatusCreated, attendee)
}

// ListAttendees handles GET /events/{id}/attendees
func (h *EventHandler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := h.svc.ListAttendees(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "event not found", "failed to list attendees")
		return
	}

	if attendees == nil {
		attendees = []model.Attendee{}
	}

	writeJSON(w, http.StatusOK, attendees)
}

// ─── Payments, add-ons, rooms ─────────────────────────────────────────────────

// RecordPayment handles POST /events/{id}/payments
func (h *EventHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req model.RecordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	payment, err := h.svc.RecordPayment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "event not found", "failed to record payment")
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

// MarkPaymentPaid handles POST /events/{id}/payments/{paymentID}/paid
func (h *EventHandler) MarkPaymentPaid(w http.ResponseWriter, r *http.Request) {
	err := h.svc.MarkPaymentPaid(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "paymentID"))
	if err != nil {
		writeServiceError(w, h.log, err, "payment not found", "failed to update payment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PutAddOns handles PUT /events/{id}/addons
func (h *EventHandler) PutAddOns(w http.ResponseWriter, r *http.Request) {
	var req model.PutAddOnsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cfg, err := h.svc.PutAddOns(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "event not found", "failed to save add-ons")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// AddBooking handles POST /events/{id}/accommodations
func (h *EventHandler) AddBooking(w http.ResponseWriter, r *http.Request) {
	var req model.AddBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	booking, err := h.svc.AddBooking(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "event not found", "failed to add booking")
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck handles GET /health. It answers 503 when the database does
// not respond within two seconds.
func HealthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
