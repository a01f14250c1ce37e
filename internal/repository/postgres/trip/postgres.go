package trip

import (
	"context"
	"errors"

	tripdomain "trip-planner-go/internal/domain/trip"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(tripdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetTrip(ctx context.Context, tripID uint) (*tripdomain.Trip, error) {
	var t tripdomain.Trip
	if err := r.db.WithContext(ctx).First(&t, "id = ?", tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tripdomain.ErrTripNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListTripsVisibleToUser returns trips the user owns or is a member of,
// deduplicated across the outer join.
func (r *PostgresRepository) ListTripsVisibleToUser(ctx context.Context, userID uint) ([]tripdomain.Trip, error) {
	var trips []tripdomain.Trip
	err := r.db.WithContext(ctx).
		Model(&tripdomain.Trip{}).
		Joins("LEFT JOIN trip_members ON trip_members.trip_id = trips.id").
		Where("trips.owner_id = ? OR trip_members.user_id = ?", userID, userID).
		Distinct("trips.*").
		Order("trips.id").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *PostgresRepository) CreateTrip(ctx context.Context, t *tripdomain.Trip) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *PostgresRepository) UpdateTrip(ctx context.Context, t *tripdomain.Trip) error {
	return r.db.WithContext(ctx).
		Model(&tripdomain.Trip{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"name":        t.Name,
			"destination": t.Destination,
			"start_date":  t.StartDate,
			"end_date":    t.EndDate,
			"updated_at":  t.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteTrip(ctx context.Context, tripID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&tripdomain.Trip{}, "id = ?", tripID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) GetMember(ctx context.Context, tripID, userID uint) (*tripdomain.TripMember, error) {
	var member tripdomain.TripMember
	if err := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tripdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, tripID uint) ([]tripdomain.TripMember, error) {
	var members []tripdomain.TripMember
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("joined_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) CreateMember(ctx context.Context, member *tripdomain.TripMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) UpdateMemberRole(ctx context.Context, tripID, userID uint, role string) error {
	return r.db.WithContext(ctx).
		Model(&tripdomain.TripMember{}).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Update("role", role).Error
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, tripID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&tripdomain.TripMember{}, "trip_id = ? AND user_id = ?", tripID, userID)
	return result.RowsAffected > 0, result.Error
}
