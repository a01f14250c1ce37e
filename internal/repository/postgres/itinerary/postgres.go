package itinerary

import (
	"context"
	"errors"

	itinerarydomain "trip-planner-go/internal/domain/itinerary"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateLocation(ctx context.Context, location *itinerarydomain.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *PostgresRepository) ListLocations(ctx context.Context) ([]itinerarydomain.Location, error) {
	var locations []itinerarydomain.Location
	if err := r.db.WithContext(ctx).Order("id").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *PostgresRepository) GetLocationByID(ctx context.Context, locationID uint) (*itinerarydomain.Location, error) {
	var location itinerarydomain.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", locationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, itinerarydomain.ErrLocationNotFound
		}
		return nil, err
	}
	return &location, nil
}

func (r *PostgresRepository) CreateDestination(ctx context.Context, destination *itinerarydomain.TripDestination) error {
	return r.db.WithContext(ctx).Create(destination).Error
}

func (r *PostgresRepository) ListDestinationsByTrip(ctx context.Context, tripID uint) ([]itinerarydomain.TripDestination, error) {
	var destinations []itinerarydomain.TripDestination
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("sort_order asc, id asc").
		Find(&destinations).Error; err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *PostgresRepository) DeleteDestination(ctx context.Context, tripID, destinationID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&itinerarydomain.TripDestination{}, "trip_id = ? AND id = ?", tripID, destinationID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CreateEvent(ctx context.Context, event *itinerarydomain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
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

func (r *PostgresRepository) GetEventByID(ctx context.Context, eventID uint) (*itinerarydomain.Event, error) {
	var event itinerarydomain.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, itinerarydomain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *PostgresRepository) UpdateEvent(ctx context.Context, event *itinerarydomain.Event) error {
	return r.db.WithContext(ctx).
		Model(&itinerarydomain.Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"location_id": event.LocationID,
			"date":        event.Date,
			"start_time":  event.StartTime,
			"end_time":    event.EndTime,
			"title":       event.Title,
			"type":        event.Type,
			"cost":        event.Cost,
			"notes":       event.Notes,
			"updated_at":  event.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteEvent(ctx context.Context, eventID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&itinerarydomain.Event{}, "id = ?", eventID)
	return result.RowsAffected > 0, result.Error
}
