package itinerary

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	"trip-planner-go/internal/transport/httpserver/middleware"
)

type createEventRequest struct {
	TripID     uint     `json:"trip_id"`
	LocationID *uint    `json:"location_id"`
	Date       string   `json:"date"`
	StartTime  *string  `json:"start_time"`
	EndTime    *string  `json:"end_time"`
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Cost       *float64 `json:"cost"`
	Notes      *string  `json:"notes"`
}

type updateEventRequest struct {
	LocationID *uint    `json:"location_id"`
	Date       *string  `json:"date"`
	StartTime  *string  `json:"start_time"`
	EndTime    *string  `json:"end_time"`
	Title      *string  `json:"title"`
	Type       *string  `json:"type"`
	Cost       *float64 `json:"cost"`
	Notes      *string  `json:"notes"`
}

type eventResponse struct {
	ID         uint      `json:"id"`
	TripID     uint      `json:"trip_id"`
	LocationID *uint     `json:"location_id"`
	Date       string    `json:"date"`
	StartTime  *string   `json:"start_time"`
	EndTime    *string   `json:"end_time"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	Cost       *float64  `json:"cost"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
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
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}
	if strings.TrimSpace(req.Type) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "type is required")
		return
	}
	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}
	startTime, err := parseTimeOfDay(req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_time")
		return
	}
	endTime, err := parseTimeOfDay(req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_time")
		return
	}

	if _, err := h.Trips.GetForViewer(r.Context(), req.TripID, userID); err != nil {
		h.writeTripError(w, "events.create", err, userID, req.TripID)
		return
	}

	created, err := h.Itinerary.CreateEvent(r.Context(), itinerarydomain.CreateEventInput{
		TripID:     req.TripID,
		LocationID: req.LocationID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
		Title:      req.Title,
		Type:       req.Type,
		Cost:       req.Cost,
		Notes:      req.Notes,
	})
	if err != nil {
		if errors.Is(err, itinerarydomain.ErrLocationNotFound) {
			h.log.BusinessError("events.create: location not found", err, "user_id", userID, "trip_id", req.TripID)
			writeError(w, http.StatusNotFound, "location_not_found", "location not found")
			return
		}
		h.log.InternalError("events.create: create event failed", err, "user_id", userID, "trip_id", req.TripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(*created))
}

func (h *Handlers) ListTripEvents(w http.ResponseWriter, r *http.Request) {
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
		h.writeTripError(w, "events.list", err, userID, tripID)
		return
	}

	items, err := h.Itinerary.ListEvents(r.Context(), tripID)
	if err != nil {
		h.log.InternalError("events.list: list events failed", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]eventResponse, 0, len(items))
	for _, event := range items {
		response = append(response, toEventResponse(event))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	eventID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid event id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	date, err := parseDateOptional(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}
	startTime, err := parseTimeOfDay(req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_time")
		return
	}
	endTime, err := parseTimeOfDay(req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_time")
		return
	}

	event, err := h.eventForViewer(w, r, "events.update", eventID, userID)
	if err != nil {
		return
	}

	updated, err := h.Itinerary.UpdateEvent(r.Context(), event.ID, itinerarydomain.UpdateEventInput{
		LocationID: req.LocationID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
		Title:      req.Title,
		Type:       req.Type,
		Cost:       req.Cost,
		Notes:      req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, itinerarydomain.ErrEventNotFound):
			h.log.BusinessError("events.update: event not found", err, "user_id", userID, "event_id", eventID)
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
		case errors.Is(err, itinerarydomain.ErrLocationNotFound):
			h.log.BusinessError("events.update: location not found", err, "user_id", userID, "event_id", eventID)
			writeError(w, http.StatusNotFound, "location_not_found", "location not found")
		default:
			h.log.InternalError("events.update: update event failed", err, "user_id", userID, "event_id", eventID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(*updated))
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid event id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	event, err := h.eventForViewer(w, r, "events.delete", eventID, userID)
	if err != nil {
		return
	}

	if err := h.Itinerary.DeleteEvent(r.Context(), event.ID); err != nil {
		if errors.Is(err, itinerarydomain.ErrEventNotFound) {
			h.log.BusinessError("events.delete: event not found", err, "user_id", userID, "event_id", eventID)
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
			return
		}
		h.log.InternalError("events.delete: delete event failed", err, "user_id", userID, "event_id", eventID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// eventForViewer loads an event and checks the caller can see its trip.
// The response is already written when an error comes back.
func (h *Handlers) eventForViewer(w http.ResponseWriter, r *http.Request, op string, eventID, userID uint) (*itinerarydomain.Event, error) {
	event, err := h.Itinerary.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, itinerarydomain.ErrEventNotFound) {
			h.log.BusinessError(op+": event not found", err, "user_id", userID, "event_id", eventID)
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
			return nil, err
		}
		h.log.InternalError(op+": get event failed", err, "user_id", userID, "event_id", eventID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return nil, err
	}

	if _, err := h.Trips.GetForViewer(r.Context(), event.TripID, userID); err != nil {
		h.writeTripError(w, op, err, userID, event.TripID)
		return nil, err
	}
	return event, nil
}

func toEventResponse(event itinerarydomain.Event) eventResponse {
	return eventResponse{
		ID:         event.ID,
		TripID:     event.TripID,
		LocationID: event.LocationID,
		Date:       formatDate(event.Date),
		StartTime:  event.StartTime,
		EndTime:    event.EndTime,
		Title:      event.Title,
		Type:       event.Type,
		Cost:       event.Cost,
		Notes:      event.Notes,
		CreatedAt:  event.CreatedAt,
		UpdatedAt:  event.UpdatedAt,
	}
}
