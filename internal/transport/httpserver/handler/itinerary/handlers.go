package itinerary

import (
	"errors"
	"net/http"

	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	tripdomain "trip-planner-go/internal/domain/trip"
	"trip-planner-go/pkg/logger"
)

type Handlers struct {
	Trips     *tripdomain.Service
	Itinerary *itinerarydomain.Service
	log       logger.Logger
}

func New(trips *tripdomain.Service, itinerary *itinerarydomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Trips: trips, Itinerary: itinerary, log: log}
}

// writeTripError maps the shared trip lookup and authorization failures.
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
