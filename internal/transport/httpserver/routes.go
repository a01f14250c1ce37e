package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"trip-planner-go/internal/config"
	"trip-planner-go/internal/transport/httpserver/handler"
	authmw "trip-planner-go/internal/transport/httpserver/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, verifier authmw.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Get("/", handlers.Common.Root)
	r.Get("/health", handlers.Common.Health)

	r.Post("/auth/register", handlers.Auth.Register)
	r.Post("/auth/login", handlers.Auth.Login)

	auth := authmw.NewJWTAuth(verifier)
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Get("/auth/me", handlers.Auth.Me)

		r.Get("/trips", handlers.Trips.ListTrips)
		r.Post("/trips", handlers.Trips.CreateTrip)
		r.Get("/trips/{id}", handlers.Trips.GetTrip)
		r.Patch("/trips/{id}", handlers.Trips.UpdateTrip)
		r.Delete("/trips/{id}", handlers.Trips.DeleteTrip)

		r.Get("/trips/{id}/members", handlers.Trips.ListMembers)
		r.Post("/trips/{id}/members", handlers.Trips.UpsertMember)
		r.Delete("/trips/{id}/members/{userID}", handlers.Trips.RemoveMember)

		r.Get("/trips/{id}/weather", handlers.Trips.TripWeather)
		r.Get("/trips/{id}/export/pdf", handlers.Trips.ExportTripPDF)

		r.Post("/locations", handlers.Itinerary.CreateLocation)
		r.Get("/locations", handlers.Itinerary.ListLocations)
		r.Get("/locations/{id}", handlers.Itinerary.GetLocation)

		r.Get("/trips/{id}/destinations", handlers.Itinerary.ListDestinations)
		r.Post("/trips/{id}/destinations", handlers.Itinerary.AddDestination)
		r.Delete("/trips/{id}/destinations/{destID}", handlers.Itinerary.RemoveDestination)

		r.Post("/events", handlers.Itinerary.CreateEvent)
		r.Get("/trips/{id}/events", handlers.Itinerary.ListTripEvents)
		r.Patch("/events/{id}", handlers.Itinerary.UpdateEvent)
		r.Delete("/events/{id}", handlers.Itinerary.DeleteEvent)

		r.Post("/budget/envelopes", handlers.Budget.CreateEnvelope)
		r.Get("/trips/{id}/budget/envelopes", handlers.Budget.ListTripEnvelopes)
		r.Patch("/budget/envelopes/{id}", handlers.Budget.UpdateEnvelope)
		r.Delete("/budget/envelopes/{id}", handlers.Budget.DeleteEnvelope)

		r.Post("/expenses", handlers.Budget.CreateExpense)
		r.Get("/trips/{id}/expenses", handlers.Budget.ListTripExpenses)
		r.Patch("/expenses/{id}", handlers.Budget.UpdateExpense)
		r.Delete("/expenses/{id}", handlers.Budget.DeleteExpense)
	})

	return r
}
