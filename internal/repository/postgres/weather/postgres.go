package weather

import (
	"context"

	weatherdomain "trip-planner-go/internal/domain/weather"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// UpsertAlert inserts the alert or refreshes severity, summary and payload
// for an existing (trip, date) row.
func (r *PostgresRepository) UpsertAlert(ctx context.Context, alert *weatherdomain.WeatherAlert) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trip_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"severity", "summary", "provider_payload"}),
		}).
		Create(alert).Error
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
