package export

import (
	"context"

	budgetdomain "trip-planner-go/internal/domain/budget"
	tripdomain "trip-planner-go/internal/domain/trip"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RenderTripPDF loads a trip's events, budget and weather alerts and renders
// the itinerary document. Authorization happens at the caller; if any of the
// four queries fails the whole export fails.
func (s *Service) RenderTripPDF(ctx context.Context, t *tripdomain.Trip) ([]byte, error) {
	events, err := s.repo.ListEventsByTrip(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	envelopes, err := s.repo.ListEnvelopesByTrip(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ListExpensesByTrip(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	alerts, err := s.repo.ListAlertsByTrip(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	return renderPDF(t, events, envelopes, expenses, alerts)
}

// envelopeActual sums the amounts of the expenses linked to one envelope,
// ignoring expenses linked elsewhere or to no envelope at all.
func envelopeActual(envelopeID uint, expenses []budgetdomain.Expense) float64 {
	var total float64
	for _, expense := range expenses {
		if expense.EnvelopeID != nil && *expense.EnvelopeID == envelopeID {
			total += expense.Amount
		}
	}
	return total
}
