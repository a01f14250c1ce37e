package trip

import (
	"context"
	"errors"
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

// RoleForUser resolves the caller's relationship to a trip: "owner", the
// membership role, or ErrNotMember. Membership is an explicit query, never
// a preloaded association.
func (s *Service) RoleForUser(ctx context.Context, t *Trip, userID uint) (string, error) {
	if t.OwnerID == userID {
		return RoleOwner, nil
	}
	member, err := s.repo.GetMember(ctx, t.ID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return "", ErrNotMember
		}
		return "", err
	}
	return member.Role, nil
}

// GetForViewer loads a trip and requires the caller to be owner or member.
// A missing trip is reported before authorization is evaluated.
func (s *Service) GetForViewer(ctx context.Context, tripID, userID uint) (*Trip, error) {
	t, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if _, err := s.RoleForUser(ctx, t, userID); err != nil {
		return nil, err
	}
	return t, nil
}

// GetForOwner loads a trip and requires the caller to be its owner.
func (s *Service) GetForOwner(ctx context.Context, tripID, userID uint) (*Trip, error) {
	t, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return t, nil
}

func (s *Service) ListVisible(ctx context.Context, userID uint) ([]Trip, error) {
	return s.repo.ListTripsVisibleToUser(ctx, userID)
}

func (s *Service) Create(ctx context.Context, input CreateTripInput) (*Trip, error) {
	name := strings.TrimSpace(input.Name)
	destination := strings.TrimSpace(input.Destination)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if destination == "" {
		return nil, fmt.Errorf("destination is required")
	}

	t := Trip{
		OwnerID:     input.OwnerID,
		Name:        name,
		Destination: destination,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if err := s.repo.CreateTrip(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) Update(ctx context.Context, tripID, userID uint, input UpdateTripInput) (*Trip, error) {
	t, err := s.GetForOwner(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("name is required")
		}
		t.Name = name
	}
	if input.Destination != nil {
		destination := strings.TrimSpace(*input.Destination)
		if destination == "" {
			return nil, fmt.Errorf("destination is required")
		}
		t.Destination = destination
	}
	if input.StartDate != nil {
		t.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		t.EndDate = *input.EndDate
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTrip(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, tripID, userID uint) error {
	if _, err := s.GetForOwner(ctx, tripID, userID); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTripNotFound
	}
	return nil
}

func (s *Service) ListMembers(ctx context.Context, tripID, userID uint) ([]TripMember, error) {
	if _, err := s.GetForViewer(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, tripID)
}

// UpsertMember adds a user to the roster or, when the (trip, user) pair
// already exists, updates the role in place without creating a duplicate.
func (s *Service) UpsertMember(ctx context.Context, tripID, actorID, memberUserID uint, role string) (*TripMember, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, fmt.Errorf("role is required")
	}

	if _, err := s.GetForOwner(ctx, tripID, actorID); err != nil {
		return nil, err
	}

	var result *TripMember
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.GetMember(ctx, tripID, memberUserID)
		if err == nil {
			if err := tx.UpdateMemberRole(ctx, tripID, memberUserID, role); err != nil {
				return err
			}
			existing.Role = role
			result = existing
			return nil
		}
		if !errors.Is(err, ErrMemberNotFound) {
			return err
		}

		member := TripMember{TripID: tripID, UserID: memberUserID, Role: role}
		if err := tx.CreateMember(ctx, &member); err != nil {
			return err
		}
		result = &member
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) RemoveMember(ctx context.Context, tripID, actorID, memberUserID uint) error {
	if _, err := s.GetForOwner(ctx, tripID, actorID); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteMember(ctx, tripID, memberUserID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}
