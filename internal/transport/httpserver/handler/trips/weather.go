package trips

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	weatherdomain "trip-planner-go/internal/domain/weather"
	"trip-planner-go/internal/transport/httpserver/middleware"
)

type weatherDayResponse struct {
	Date       string  `json:"date"`
	TempMax    float64 `json:"temp_max"`
	TempMin    float64 `json:"temp_min"`
	PrecipProb int     `json:"precip_prob"`
	Summary    string  `json:"summary"`
	Advice     string  `json:"advice"`
}

type tripWeatherResponse struct {
	City      string               `json:"city"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Days      []weatherDayResponse `json:"days"`
}

func (h *Handlers) TripWeather(w http.ResponseWriter, r *http.Request) {
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
		h.writeTripError(w, "weather.trip", err, userID, tripID)
		return
	}

	days, err := h.Weather.ForecastForTrip(r.Context(), t.ID, t.Destination, t.StartDate, t.EndDate)
	if err != nil {
		if errors.Is(err, weatherdomain.ErrDestinationNotFound) {
			h.log.BusinessError("weather.trip: destination not found", err, "user_id", userID, "trip_id", tripID, "destination", t.Destination)
			writeError(w, http.StatusNotFound, "destination_not_found", weatherdomain.ErrDestinationNotFound.Error())
			return
		}
		h.log.InternalError("weather.trip: forecast failed", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := tripWeatherResponse{
		City:      t.Destination,
		StartDate: formatDate(t.StartDate),
		EndDate:   formatDate(t.EndDate),
		Days:      make([]weatherDayResponse, 0, len(days)),
	}
	for _, day := range days {
		response.Days = append(response.Days, weatherDayResponse{
			Date:       formatDate(day.Date),
			TempMax:    day.TempMax,
			TempMin:    day.TempMin,
			PrecipProb: day.PrecipProb,
			Summary:    day.Summary,
			Advice:     day.Advice,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) ExportTripPDF(w http.ResponseWriter, r *http.Request) {
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
		h.writeTripError(w, "export.pdf", err, userID, tripID)
		return
	}

	document, err := h.Export.RenderTripPDF(r.Context(), t)
	if err != nil {
		h.log.InternalError("export.pdf: render failed", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("trip-%d.pdf", t.ID)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}
