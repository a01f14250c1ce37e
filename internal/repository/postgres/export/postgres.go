package export

import (
	"context"

	budgetdomain "trip-planner-go/internal/domain/budget"
	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	weatherdomain "trip-planner-go/internal/domain/weather"

	"gorm.io/gorm"
)

// PostgresRepository is the exporter's read-only view over a trip's
// dependents.
type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListEventsByTrip(ctx context.Context, tripID uint) ([]itinerarydomain.Event, error) {
	var events []itinerarydomain.Event
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("date asc, start_time asc").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresRepository) ListEnvelopesByTrip(ctx context.Context, tripID uint) ([]budgetdomain.BudgetEnvelope, error) {
	var envelopes []budgetdomain.BudgetEnvelope
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("id").
		Find(&envelopes).Error; err != nil {
		return nil, err
	}
	return envelopes, nil
}

func (r *PostgresRepository) ListExpensesByTrip(ctx context.Context, tripID uint) ([]budgetdomain.Expense, error) {
	var expenses []budgetdomain.Expense
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *PostgresRepository) ListAlertsByTrip(ctx context.Context, tripID uint) ([]weatherdomain.WeatherAlert, error) {
	var alerts []weatherdomain.WeatherAlert
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("date asc").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}
