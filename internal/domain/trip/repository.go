package trip

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetTrip(ctx context.Context, tripID uint) (*Trip, error)
	ListTripsVisibleToUser(ctx context.Context, userID uint) ([]Trip, error)
	CreateTrip(ctx context.Context, t *Trip) error
	UpdateTrip(ctx context.Context, t *Trip) error
	DeleteTrip(ctx context.Context, tripID uint) (bool, error)
	GetMember(ctx context.Context, tripID, userID uint) (*TripMember, error)
	ListMembers(ctx context.Context, tripID uint) ([]TripMember, error)
	CreateMember(ctx context.Context, member *TripMember) error
	UpdateMemberRole(ctx context.Context, tripID, userID uint, role string) error
	DeleteMember(ctx context.Context, tripID, userID uint) (bool, error)
}
