package itinerary

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	"trip-planner-go/internal/transport/httpserver/middleware"
)

type addDestinationRequest struct {
	LocationID uint `json:"location_id"`
	SortOrder  int  `json:"sort_order"`
}

type destinationResponse struct {
	ID         uint `json:"id"`
	TripID     uint `json:"trip_id"`
	LocationID uint `json:"location_id"`
	SortOrder  int  `json:"sort_order"`
}

func (h *Handlers) AddDestination(w http.ResponseWriter, r *http.Request) {
	var req addDestinationRequest
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

	if req.LocationID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "location_id is required")
		return
	}

	if _, err := h.Trips.GetForViewer(r.Context(), tripID, userID); err != nil {
		h.writeTripError(w, "destinations.add", err, userID, tripID)
		return
	}

	created, err := h.Itinerary.AddDestination(r.Context(), itinerarydomain.AddDestinationInput{
		TripID:     tripID,
		LocationID: req.LocationID,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, itinerarydomain.ErrLocationNotFound) {
			h.log.BusinessError("destinations.add: location not found", err, "user_id", userID, "trip_id", tripID, "location_id", req.LocationID)
			writeError(w, http.StatusNotFound, "location_not_found", "location not found")
			return
		}
		h.log.InternalError("destinations.add: add destination failed", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toDestinationResponse(*created))
}

func (h *Handlers) ListDestinations(w http.ResponseWriter, r *http.Request) {
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
		h.writeTripError(w, "destinations.list", err, userID, tripID)
		return
	}

	items, err := h.Itinerary.ListDestinations(r.Context(), tripID)
	if err != nil {
		h.log.InternalError("destinations.list: list destinations failed", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]destinationResponse, 0, len(items))
	for _, destination := range items {
		response = append(response, toDestinationResponse(destination))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) RemoveDestination(w http.ResponseWriter, r *http.Request) {
	tripID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid trip id")
		return
	}
	destinationID, err := parseUintParam(chi.URLParam(r, "destID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid destination id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if _, err := h.Trips.GetForViewer(r.Context(), tripID, userID); err != nil {
		h.writeTripError(w, "destinations.remove", err, userID, tripID)
		return
	}

	if err := h.Itinerary.RemoveDestination(r.Context(), tripID, destinationID); err != nil {
		if errors.Is(err, itinerarydomain.ErrDestinationNotFound) {
			h.log.BusinessError("destinations.remove: destination not found", err, "user_id", userID, "trip_id", tripID, "destination_id", destinationID)
			writeError(w, http.StatusNotFound, "destination_not_found", "destination not found")
			return
		}
		h.log.InternalError("destinations.remove: remove destination failed", err, "user_id", userID, "trip_id", tripID, "destination_id", destinationID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toDestinationResponse(destination itinerarydomain.TripDestination) destinationResponse {
	return destinationResponse{
		ID:         destination.ID,
		TripID:     destination.TripID,
		LocationID: destination.LocationID,
		SortOrder:  destination.SortOrder,
	}
}
