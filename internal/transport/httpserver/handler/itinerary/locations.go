package itinerary

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	itinerarydomain "trip-planner-go/internal/domain/itinerary"
)

type createLocationRequest struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type locationResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Address   *string   `json:"address"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handlers) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if strings.TrimSpace(req.Type) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "type is required")
		return
	}

	created, err := h.Itinerary.CreateLocation(r.Context(), itinerarydomain.CreateLocationInput{
		Name:      req.Name,
		Type:      req.Type,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		h.log.InternalError("locations.create: create location failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toLocationResponse(*created))
}

func (h *Handlers) ListLocations(w http.ResponseWriter, r *http.Request) {
	items, err := h.Itinerary.ListLocations(r.Context())
	if err != nil {
		h.log.InternalError("locations.list: list locations failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]locationResponse, 0, len(items))
	for _, location := range items {
		response = append(response, toLocationResponse(location))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetLocation(w http.ResponseWriter, r *http.Request) {
	locationID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid location id")
		return
	}

	location, err := h.Itinerary.GetLocation(r.Context(), locationID)
	if err != nil {
		if errors.Is(err, itinerarydomain.ErrLocationNotFound) {
			h.log.BusinessError("locations.get: location not found", err, "location_id", locationID)
			writeError(w, http.StatusNotFound, "location_not_found", "location not found")
			return
		}
		h.log.InternalError("locations.get: get location failed", err, "location_id", locationID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toLocationResponse(*location))
}

func toLocationResponse(location itinerarydomain.Location) locationResponse {
	return locationResponse{
		ID:        location.ID,
		Name:      location.Name,
		Type:      location.Type,
		Address:   location.Address,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		CreatedAt: location.CreatedAt,
	}
}
