package export

import (
	"context"

	budgetdomain "trip-planner-go/internal/domain/budget"
	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	weatherdomain "trip-planner-go/internal/domain/weather"
)

// Repository is the read-only view the exporter needs over a trip's
// dependents. Events come back ordered by date, then start time.
type Repository interface {
	ListEventsByTrip(ctx context.Context, tripID uint) ([]itinerarydomain.Event, error)
	ListEnvelopesByTrip(ctx context.Context, tripID uint) ([]budgetdomain.BudgetEnvelope, error)
	ListExpensesByTrip(ctx context.Context, tripID uint) ([]budgetdomain.Expense, error)
	ListAlertsByTrip(ctx context.Context, tripID uint) ([]weatherdomain.WeatherAlert, error)
}
