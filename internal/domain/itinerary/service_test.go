package itinerary

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type fakeItineraryRepo struct {
	locations    map[uint]*Location
	destinations map[uint]*TripDestination
	events       map[uint]*Event
	nextID       uint
}

func newFakeItineraryRepo() *fakeItineraryRepo {
	return &fakeItineraryRepo{
		locations:    make(map[uint]*Location),
		destinations: make(map[uint]*TripDestination),
		events:       make(map[uint]*Event),
		nextID:       1,
	}
}

func (r *fakeItineraryRepo) CreateLocation(ctx context.Context, location *Location) error {
	location.ID = r.nextID
	r.nextID++
	copied := *location
	r.locations[location.ID] = &copied
	return nil
}

func (r *fakeItineraryRepo) ListLocations(ctx context.Context) ([]Location, error) {
	result := make([]Location, 0, len(r.locations))
	for _, location := range r.locations {
		result = append(result, *location)
	}
	return result, nil
}

func (r *fakeItineraryRepo) GetLocationByID(ctx context.Context, locationID uint) (*Location, error) {
	location, ok := r.locations[locationID]
	if !ok {
		return nil, ErrLocationNotFound
	}
	copied := *location
	return &copied, nil
}

func (r *fakeItineraryRepo) CreateDestination(ctx context.Context, destination *TripDestination) error {
	destination.ID = r.nextID
	r.nextID++
	copied := *destination
	r.destinations[destination.ID] = &copied
	return nil
}

func (r *fakeItineraryRepo) ListDestinationsByTrip(ctx context.Context, tripID uint) ([]TripDestination, error) {
	result := make([]TripDestination, 0)
	for _, destination := range r.destinations {
		if destination.TripID == tripID {
			result = append(result, *destination)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (r *fakeItineraryRepo) DeleteDestination(ctx context.Context, tripID, destinationID uint) (bool, error) {
	destination, ok := r.destinations[destinationID]
	if !ok || destination.TripID != tripID {
		return false, nil
	}
	delete(r.destinations, destinationID)
	return true, nil
}

func (r *fakeItineraryRepo) CreateEvent(ctx context.Context, event *Event) error {
	event.ID = r.nextID
	r.nextID++
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeItineraryRepo) ListEventsByTrip(ctx context.Context, tripID uint) ([]Event, error) {
	result := make([]Event, 0)
	for _, event := range r.events {
		if event.TripID == tripID {
			result = append(result, *event)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		left, right := "", ""
		if result[i].StartTime != nil {
			left = *result[i].StartTime
		}
		if result[j].StartTime != nil {
			right = *result[j].StartTime
		}
		return left < right
	})
	return result, nil
}

func (r *fakeItineraryRepo) GetEventByID(ctx context.Context, eventID uint) (*Event, error) {
	event, ok := r.events[eventID]
	if !ok {
		return nil, ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeItineraryRepo) UpdateEvent(ctx context.Context, event *Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return ErrEventNotFound
	}
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeItineraryRepo) DeleteEvent(ctx context.Context, eventID uint) (bool, error) {
	if _, ok := r.events[eventID]; !ok {
		return false, nil
	}
	delete(r.events, eventID)
	return true, nil
}

func strPtr(v string) *string { return &v }

var eventDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestCreateLocationTrims(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewService(repo)

	created, err := svc.CreateLocation(context.Background(), CreateLocationInput{Name: "  Belem Tower ", Type: " sight "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Name != "Belem Tower" || created.Type != "sight" {
		t.Fatalf("expected trimmed fields, got %+v", created)
	}
}

func TestAddDestinationRequiresExistingLocation(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewService(repo)

	_, err := svc.AddDestination(context.Background(), AddDestinationInput{TripID: 1, LocationID: 99})
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestListDestinationsOrderedBySortOrder(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewService(repo)

	location, _ := svc.CreateLocation(context.Background(), CreateLocationInput{Name: "A", Type: "city"})
	_, _ = svc.AddDestination(context.Background(), AddDestinationInput{TripID: 1, LocationID: location.ID, SortOrder: 2})
	_, _ = svc.AddDestination(context.Background(), AddDestinationInput{TripID: 1, LocationID: location.ID, SortOrder: 1})

	destinations, err := svc.ListDestinations(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(destinations) != 2 {
		t.Fatalf("expected 2 destinations, got %d", len(destinations))
	}
	if destinations[0].SortOrder != 1 || destinations[1].SortOrder != 2 {
		t.Fatalf("expected sort order ascending, got %+v", destinations)
	}
}

func TestRemoveDestinationScopedToTrip(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewService(repo)

	location, _ := svc.CreateLocation(context.Background(), CreateLocationInput{Name: "A", Type: "city"})
	destination, _ := svc.AddDestination(context.Background(), AddDestinationInput{TripID: 1, LocationID: location.ID})

	if err := svc.RemoveDestination(context.Background(), 2, destination.ID); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound for wrong trip, got %v", err)
	}
	if err := svc.RemoveDestination(context.Background(), 1, destination.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCreateEventValidatesLocation(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewService(repo)

	missing := uint(99)
	_, err := svc.CreateEvent(context.Background(), CreateEventInput{
		TripID:     1,
		LocationID: &missing,
		Date:       eventDate,
		Title:      "Dinner",
		Type:       "food",
	})
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestCreateEventRequiresTitle(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewService(repo)

	_, err := svc.CreateEvent(context.Background(), CreateEventInput{TripID: 1, Date: eventDate, Type: "food"})
	if err == nil {
		t.Fatalf("expected an error for empty title")
	}
}

func TestListEventsOrderedByDateThenStart(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewService(repo)

	_, _ = svc.CreateEvent(context.Background(), CreateEventInput{
		TripID: 1, Date: eventDate.AddDate(0, 0, 1), Title: "Museum", Type: "sight",
	})
	_, _ = svc.CreateEvent(context.Background(), CreateEventInput{
		TripID: 1, Date: eventDate, StartTime: strPtr("18:00"), Title: "Dinner", Type: "food",
	})
	_, _ = svc.CreateEvent(context.Background(), CreateEventInput{
		TripID: 1, Date: eventDate, StartTime: strPtr("09:00"), Title: "Walk", Type: "outdoor",
	})

	events, err := svc.ListEvents(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Title != "Walk" || events[1].Title != "Dinner" || events[2].Title != "Museum" {
		t.Fatalf("unexpected order: %q, %q, %q", events[0].Title, events[1].Title, events[2].Title)
	}
}

func TestUpdateEventPartial(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewService(repo)

	event, _ := svc.CreateEvent(context.Background(), CreateEventInput{
		TripID: 1, Date: eventDate, Title: "Dinner", Type: "food",
	})

	updated, err := svc.UpdateEvent(context.Background(), event.ID, UpdateEventInput{Title: strPtr("Late Dinner")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Title != "Late Dinner" {
		t.Fatalf("expected title updated, got %q", updated.Title)
	}
	if updated.Type != "food" {
		t.Fatalf("expected type untouched, got %q", updated.Type)
	}
}

func TestDeleteEventMissing(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewService(repo)

	if err := svc.DeleteEvent(context.Background(), 42); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
