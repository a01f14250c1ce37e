package itinerary

import "context"

type Repository interface {
	CreateLocation(ctx context.Context, location *Location) error
	ListLocations(ctx context.Context) ([]Location, error)
	GetLocationByID(ctx context.Context, locationID uint) (*Location, error)
	CreateDestination(ctx context.Context, destination *TripDestination) error
	ListDestinationsByTrip(ctx context.Context, tripID uint) ([]TripDestination, error)
	DeleteDestination(ctx context.Context, tripID, destinationID uint) (bool, error)
	CreateEvent(ctx context.Context, event *Event) error
	ListEventsByTrip(ctx context.Context, tripID uint) ([]Event, error)
	GetEventByID(ctx context.Context, eventID uint) (*Event, error)
	UpdateEvent(ctx context.Context, event *Event) error
	DeleteEvent(ctx context.Context, eventID uint) (bool, error)
}
