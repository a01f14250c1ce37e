package budget

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

func (s *Service) CreateEnvelope(ctx context.Context, input CreateEnvelopeInput) (*BudgetEnvelope, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}

	envelope := BudgetEnvelope{
		TripID:        input.TripID,
		Category:      category,
		PlannedAmount: input.PlannedAmount,
		Notes:         input.Notes,
	}
	if err := s.repo.CreateEnvelope(ctx, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

func (s *Service) ListEnvelopes(ctx context.Context, tripID uint) ([]BudgetEnvelope, error) {
	return s.repo.ListEnvelopesByTrip(ctx, tripID)
}

func (s *Service) GetEnvelope(ctx context.Context, envelopeID uint) (*BudgetEnvelope, error) {
	return s.repo.GetEnvelopeByID(ctx, envelopeID)
}

func (s *Service) UpdateEnvelope(ctx context.Context, envelopeID uint, input UpdateEnvelopeInput) (*BudgetEnvelope, error) {
	envelope, err := s.repo.GetEnvelopeByID(ctx, envelopeID)
	if err != nil {
		return nil, err
	}

	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, fmt.Errorf("category is required")
		}
		envelope.Category = category
	}
	if input.PlannedAmount != nil {
		envelope.PlannedAmount = *input.PlannedAmount
	}
	if input.Notes != nil {
		envelope.Notes = input.Notes
	}
	envelope.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateEnvelope(ctx, envelope); err != nil {
		return nil, err
	}
	return envelope, nil
}

func (s *Service) DeleteEnvelope(ctx context.Context, envelopeID uint) error {
	deleted, err := s.repo.DeleteEnvelope(ctx, envelopeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEnvelopeNotFound
	}
	return nil
}

func (s *Service) CreateExpense(ctx context.Context, input CreateExpenseInput) (*Expense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	if input.EnvelopeID != nil {
		if err := s.checkEnvelopeTrip(ctx, *input.EnvelopeID, input.TripID); err != nil {
			return nil, err
		}
	}

	expense := Expense{
		TripID:      input.TripID,
		EnvelopeID:  input.EnvelopeID,
		EventID:     input.EventID,
		Description: description,
		Amount:      input.Amount,
		Currency:    currency,
		SpentAtDate: input.SpentAtDate,
	}
	if err := s.repo.CreateExpense(ctx, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *Service) ListExpenses(ctx context.Context, tripID uint) ([]Expense, error) {
	return s.repo.ListExpensesByTrip(ctx, tripID)
}

func (s *Service) GetExpense(ctx context.Context, expenseID uint) (*Expense, error) {
	return s.repo.GetExpenseByID(ctx, expenseID)
}

func (s *Service) UpdateExpense(ctx context.Context, expenseID uint, input UpdateExpenseInput) (*Expense, error) {
	expense, err := s.repo.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if input.EnvelopeID != nil {
		if err := s.checkEnvelopeTrip(ctx, *input.EnvelopeID, expense.TripID); err != nil {
			return nil, err
		}
		expense.EnvelopeID = input.EnvelopeID
	}
	if input.EventID != nil {
		expense.EventID = input.EventID
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, fmt.Errorf("description is required")
		}
		expense.Description = description
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*input.Currency))
		if currency == "" {
			return nil, fmt.Errorf("currency is required")
		}
		expense.Currency = currency
	}
	if input.SpentAtDate != nil {
		expense.SpentAtDate = *input.SpentAtDate
	}
	expense.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *Service) DeleteExpense(ctx context.Context, expenseID uint) error {
	deleted, err := s.repo.DeleteExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *Service) checkEnvelopeTrip(ctx context.Context, envelopeID, tripID uint) error {
	envelope, err := s.repo.GetEnvelopeByID(ctx, envelopeID)
	if err != nil {
		return err
	}
	if envelope.TripID != tripID {
		return ErrEnvelopeTripMismatch
	}
	return nil
}
