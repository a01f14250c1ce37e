package budget

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	budgetdomain "trip-planner-go/internal/domain/budget"
	"trip-planner-go/internal/transport/httpserver/middleware"
)

type createEnvelopeRequest struct {
	TripID        uint    `json:"trip_id"`
	Category      string  `json:"category"`
	PlannedAmount float64 `json:"planned_amount"`
	Notes         *string `json:"notes"`
}

type updateEnvelopeRequest struct {
	Category      *string  `json:"category"`
	PlannedAmount *float64 `json:"planned_amount"`
	Notes         *string  `json:"notes"`
}

type envelopeResponse struct {
	ID            uint      `json:"id"`
	TripID        uint      `json:"trip_id"`
	Category      string    `json:"category"`
	PlannedAmount float64   `json:"planned_amount"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (h *Handlers) CreateEnvelope(w http.ResponseWriter, r *http.Request) {
	var req createEnvelopeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if req.TripID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "trip_id is required")
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "category is required")
		return
	}
	if req.PlannedAmount < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "planned_amount must not be negative")
		return
	}

	if _, err := h.Trips.GetForViewer(r.Context(), req.TripID, userID); err != nil {
		h.writeTripError(w, "envelopes.create", err, userID, req.TripID)
		return
	}

	created, err := h.Budget.CreateEnvelope(r.Context(), budgetdomain.CreateEnvelopeInput{
		TripID:        req.TripID,
		Category:      req.Category,
		PlannedAmount: req.PlannedAmount,
		Notes:         req.Notes,
	})
	if err != nil {
		h.log.InternalError("envelopes.create: create envelope failed", err, "user_id", userID, "trip_id", req.TripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toEnvelopeResponse(*created))
}

func (h *Handlers) ListTripEnvelopes(w http.ResponseWriter, r *http.Request) {
	tripID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid trip id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if _, err := h.Trips.GetForViewer(r.Context(), tripID, userID); err != nil {
		h.writeTripError(w, "envelopes.list", err, userID, tripID)
		return
	}

	items, err := h.Budget.ListEnvelopes(r.Context(), tripID)
	if err != nil {
		h.log.InternalError("envelopes.list: list envelopes failed", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]envelopeResponse, 0, len(items))
	for _, envelope := range items {
		response = append(response, toEnvelopeResponse(envelope))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) UpdateEnvelope(w http.ResponseWriter, r *http.Request) {
	var req updateEnvelopeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	envelopeID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid envelope id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if req.PlannedAmount != nil && *req.PlannedAmount < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "planned_amount must not be negative")
		return
	}

	envelope, err := h.envelopeForViewer(w, r, "envelopes.update", envelopeID, userID)
	if err != nil {
		return
	}

	updated, err := h.Budget.UpdateEnvelope(r.Context(), envelope.ID, budgetdomain.UpdateEnvelopeInput{
		Category:      req.Category,
		PlannedAmount: req.PlannedAmount,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, budgetdomain.ErrEnvelopeNotFound) {
			h.log.BusinessError("envelopes.update: envelope not found", err, "user_id", userID, "envelope_id", envelopeID)
			writeError(w, http.StatusNotFound, "envelope_not_found", "envelope not found")
			return
		}
		h.log.InternalError("envelopes.update: update envelope failed", err, "user_id", userID, "envelope_id", envelopeID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toEnvelopeResponse(*updated))
}

func (h *Handlers) DeleteEnvelope(w http.ResponseWriter, r *http.Request) {
	envelopeID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid envelope id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	envelope, err := h.envelopeForViewer(w, r, "envelopes.delete", envelopeID, userID)
	if err != nil {
		return
	}

	if err := h.Budget.DeleteEnvelope(r.Context(), envelope.ID); err != nil {
		if errors.Is(err, budgetdomain.ErrEnvelopeNotFound) {
			h.log.BusinessError("envelopes.delete: envelope not found", err, "user_id", userID, "envelope_id", envelopeID)
			writeError(w, http.StatusNotFound, "envelope_not_found", "envelope not found")
			return
		}
		h.log.InternalError("envelopes.delete: delete envelope failed", err, "user_id", userID, "envelope_id", envelopeID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// envelopeForViewer loads an envelope and checks the caller can see its trip.
// The response is already written when an error comes back.
func (h *Handlers) envelopeForViewer(w http.ResponseWriter, r *http.Request, op string, envelopeID, userID uint) (*budgetdomain.BudgetEnvelope, error) {
	envelope, err := h.Budget.GetEnvelope(r.Context(), envelopeID)
	if err != nil {
		if errors.Is(err, budgetdomain.ErrEnvelopeNotFound) {
			h.log.BusinessError(op+": envelope not found", err, "user_id", userID, "envelope_id", envelopeID)
			writeError(w, http.StatusNotFound, "envelope_not_found", "envelope not found")
			return nil, err
		}
		h.log.InternalError(op+": get envelope failed", err, "user_id", userID, "envelope_id", envelopeID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return nil, err
	}

	if _, err := h.Trips.GetForViewer(r.Context(), envelope.TripID, userID); err != nil {
		h.writeTripError(w, op, err, userID, envelope.TripID)
		return nil, err
	}
	return envelope, nil
}

func toEnvelopeResponse(envelope budgetdomain.BudgetEnvelope) envelopeResponse {
	return envelopeResponse{
		ID:            envelope.ID,
		TripID:        envelope.TripID,
		Category:      envelope.Category,
		PlannedAmount: envelope.PlannedAmount,
		Notes:         envelope.Notes,
		CreatedAt:     envelope.CreatedAt,
		UpdatedAt:     envelope.UpdatedAt,
	}
}
