package trips

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	exportdomain "trip-planner-go/internal/domain/export"
	tripdomain "trip-planner-go/internal/domain/trip"
	weatherdomain "trip-planner-go/internal/domain/weather"
	"trip-planner-go/internal/transport/httpserver/middleware"
	"trip-planner-go/pkg/logger"
)

type Handlers struct {
	Trips   *tripdomain.Service
	Weather *weatherdomain.Service
	Export  *exportdomain.Service
	log     logger.Logger
}

func New(trips *tripdomain.Service, weather *weatherdomain.Service, export *exportdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Trips: trips, Weather: weather, Export: export, log: log}
}

type createTripRequest struct {
	Name        string `json:"name"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type updateTripRequest struct {
	Name        *string `json:"name"`
	Destination *string `json:"destination"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type tripResponse struct {
	ID          uint      `json:"id"`
	OwnerID     uint      `json:"owner_id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *Handlers) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	items, err := h.Trips.ListVisible(r.Context(), userID)
	if err != nil {
		h.log.InternalError("trips.list: list trips failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]tripResponse, 0, len(items))
	for _, t := range items {
		response = append(response, toTripResponse(t))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if strings.TrimSpace(req.Destination) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "destination is required")
		return
	}
	startDate, err := parseDateRequired(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	endDate, err := parseDateRequired(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	created, err := h.Trips.Create(r.Context(), tripdomain.CreateTripInput{
		OwnerID:     userID,
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		h.log.InternalError("trips.create: create trip failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toTripResponse(*created))
}

func (h *Handlers) GetTrip(w http.ResponseWriter, r *http.Request) {
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

	t, err := h.Trips.GetForViewer(r.Context(), tripID, userID)
	if err != nil {
		h.writeTripError(w, "trips.get", err, userID, tripID)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(*t))
}

func (h *Handlers) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

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

	startDate, err := parseDateOptional(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	endDate, err := parseDateOptional(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	updated, err := h.Trips.Update(r.Context(), tripID, userID, tripdomain.UpdateTripInput{
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		h.writeTripError(w, "trips.update", err, userID, tripID)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(*updated))
}

func (h *Handlers) DeleteTrip(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Trips.Delete(r.Context(), tripID, userID); err != nil {
		h.writeTripError(w, "trips.delete", err, userID, tripID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeTripError maps the shared trip lookup and authorization failures.
// A missing trip always wins over a forbidden one.
func (h *Handlers) writeTripError(w http.ResponseWriter, op string, err error, userID, tripID uint) {
	switch {
	case errors.Is(err, tripdomain.ErrTripNotFound):
		h.log.BusinessError(op+": trip not found", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusNotFound, "trip_not_found", "trip not found")
	case errors.Is(err, tripdomain.ErrNotMember), errors.Is(err, tripdomain.ErrNotOwner):
		h.log.BusinessError(op+": access denied", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusForbidden, "forbidden", "not allowed for this trip")
	default:
		h.log.InternalError(op+": failed", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func toTripResponse(t tripdomain.Trip) tripResponse {
	return tripResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Name:        t.Name,
		Destination: t.Destination,
		StartDate:   formatDate(t.StartDate),
		EndDate:     formatDate(t.EndDate),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
