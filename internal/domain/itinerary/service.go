package itinerary

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateLocation(ctx context.Context, input CreateLocationInput) (*Location, error) {
	name := strings.TrimSpace(input.Name)
	kind := strings.TrimSpace(input.Type)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if kind == "" {
		return nil, fmt.Errorf("type is required")
	}

	location := Location{
		Name:      name,
		Type:      kind,
		Address:   input.Address,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if err := s.repo.CreateLocation(ctx, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

func (s *Service) ListLocations(ctx context.Context) ([]Location, error) {
	return s.repo.ListLocations(ctx)
}

func (s *Service) GetLocation(ctx context.Context, locationID uint) (*Location, error) {
	return s.repo.GetLocationByID(ctx, locationID)
}

func (s *Service) AddDestination(ctx context.Context, input AddDestinationInput) (*TripDestination, error) {
	if _, err := s.repo.GetLocationByID(ctx, input.LocationID); err != nil {
		return nil, err
	}

	destination := TripDestination{
		TripID:     input.TripID,
		LocationID: input.LocationID,
		SortOrder:  input.SortOrder,
	}
	if err := s.repo.CreateDestination(ctx, &destination); err != nil {
		return nil, err
	}
	return &destination, nil
}

func (s *Service) ListDestinations(ctx context.Context, tripID uint) ([]TripDestination, error) {
	return s.repo.ListDestinationsByTrip(ctx, tripID)
}

func (s *Service) RemoveDestination(ctx context.Context, tripID, destinationID uint) error {
	deleted, err := s.repo.DeleteDestination(ctx, tripID, destinationID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrDestinationNotFound
	}
	return nil
}

func (s *Service) CreateEvent(ctx context.Context, input CreateEventInput) (*Event, error) {
	title := strings.TrimSpace(input.Title)
	kind := strings.TrimSpace(input.Type)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if kind == "" {
		return nil, fmt.Errorf("type is required")
	}

	if input.LocationID != nil {
		if _, err := s.repo.GetLocationByID(ctx, *input.LocationID); err != nil {
			return nil, err
		}
	}

	event := Event{
		TripID:     input.TripID,
		LocationID: input.LocationID,
		Date:       input.Date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Title:      title,
		Type:       kind,
		Cost:       input.Cost,
		Notes:      input.Notes,
	}
	if err := s.repo.CreateEvent(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns a trip's events ordered by date, then start time.
func (s *Service) ListEvents(ctx context.Context, tripID uint) ([]Event, error) {
	return s.repo.ListEventsByTrip(ctx, tripID)
}

func (s *Service) GetEvent(ctx context.Context, eventID uint) (*Event, error) {
	return s.repo.GetEventByID(ctx, eventID)
}

func (s *Service) UpdateEvent(ctx context.Context, eventID uint, input UpdateEventInput) (*Event, error) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if input.LocationID != nil {
		if _, err := s.repo.GetLocationByID(ctx, *input.LocationID); err != nil {
			return nil, err
		}
		event.LocationID = input.LocationID
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.StartTime != nil {
		event.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = input.EndTime
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("title is required")
		}
		event.Title = title
	}
	if input.Type != nil {
		kind := strings.TrimSpace(*input.Type)
		if kind == "" {
			return nil, fmt.Errorf("type is required")
		}
		event.Type = kind
	}
	if input.Cost != nil {
		event.Cost = input.Cost
	}
	if input.Notes != nil {
		event.Notes = input.Notes
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) DeleteEvent(ctx context.Context, eventID uint) error {
	deleted, err := s.repo.DeleteEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEventNotFound
	}
	return nil
}
