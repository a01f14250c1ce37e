package handler

import (
	"trip-planner-go/internal/transport/httpserver/handler/auth"
	"trip-planner-go/internal/transport/httpserver/handler/budget"
	"trip-planner-go/internal/transport/httpserver/handler/common"
	"trip-planner-go/internal/transport/httpserver/handler/itinerary"
	"trip-planner-go/internal/transport/httpserver/handler/trips"
)

// Handlers bundles the per-area handler sets for the router.
type Handlers struct {
	Common    *common.Handlers
	Auth      *auth.Handlers
	Trips     *trips.Handlers
	Itinerary *itinerary.Handlers
	Budget    *budget.Handlers
}
