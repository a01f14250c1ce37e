package budget

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeBudgetRepo struct {
	envelopes map[uint]*BudgetEnvelope
	expenses  map[uint]*Expense
	nextID    uint
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{
		envelopes: make(map[uint]*BudgetEnvelope),
		expenses:  make(map[uint]*Expense),
		nextID:    1,
	}
}

func (r *fakeBudgetRepo) CreateEnvelope(ctx context.Context, envelope *BudgetEnvelope) error {
	envelope.ID = r.nextID
	r.nextID++
	copied := *envelope
	r.envelopes[envelope.ID] = &copied
	return nil
}

func (r *fakeBudgetRepo) ListEnvelopesByTrip(ctx context.Context, tripID uint) ([]BudgetEnvelope, error) {
	result := make([]BudgetEnvelope, 0)
	for _, envelope := range r.envelopes {
		if envelope.TripID == tripID {
			result = append(result, *envelope)
		}
	}
	return result, nil
}

func (r *fakeBudgetRepo) GetEnvelopeByID(ctx context.Context, envelopeID uint) (*BudgetEnvelope, error) {
	envelope, ok := r.envelopes[envelopeID]
	if !ok {
		return nil, ErrEnvelopeNotFound
	}
	copied := *envelope
	return &copied, nil
}

func (r *fakeBudgetRepo) UpdateEnvelope(ctx context.Context, envelope *BudgetEnvelope) error {
	if _, ok := r.envelopes[envelope.ID]; !ok {
		return ErrEnvelopeNotFound
	}
	copied := *envelope
	r.envelopes[envelope.ID] = &copied
	return nil
}

func (r *fakeBudgetRepo) DeleteEnvelope(ctx context.Context, envelopeID uint) (bool, error) {
	if _, ok := r.envelopes[envelopeID]; !ok {
		return false, nil
	}
	delete(r.envelopes, envelopeID)
	return true, nil
}

func (r *fakeBudgetRepo) CreateExpense(ctx context.Context, expense *Expense) error {
	expense.ID = r.nextID
	r.nextID++
	copied := *expense
	r.expenses[expense.ID] = &copied
	return nil
}

func (r *fakeBudgetRepo) ListExpensesByTrip(ctx context.Context, tripID uint) ([]Expense, error) {
	result := make([]Expense, 0)
	for _, expense := range r.expenses {
		if expense.TripID == tripID {
			result = append(result, *expense)
		}
	}
	return result, nil
}

func (r *fakeBudgetRepo) GetExpenseByID(ctx context.Context, expenseID uint) (*Expense, error) {
	expense, ok := r.expenses[expenseID]
	if !ok {
		return nil, ErrExpenseNotFound
	}
	copied := *expense
	return &copied, nil
}

func (r *fakeBudgetRepo) UpdateExpense(ctx context.Context, expense *Expense) error {
	if _, ok := r.expenses[expense.ID]; !ok {
		return ErrExpenseNotFound
	}
	copied := *expense
	r.expenses[expense.ID] = &copied
	return nil
}

func (r *fakeBudgetRepo) DeleteExpense(ctx context.Context, expenseID uint) (bool, error) {
	if _, ok := r.expenses[expenseID]; !ok {
		return false, nil
	}
	delete(r.expenses, expenseID)
	return true, nil
}

var spentAt = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestCreateEnvelopeTrimsCategory(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := NewService(repo)

	created, err := svc.CreateEnvelope(context.Background(), CreateEnvelopeInput{
		TripID:        1,
		Category:      "  Food  ",
		PlannedAmount: 300,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Category != "Food" {
		t.Fatalf("expected trimmed category, got %q", created.Category)
	}
}

func TestCreateExpenseDefaultsCurrency(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := NewService(repo)

	created, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		TripID:      1,
		Description: "Dinner",
		Amount:      42.5,
		SpentAtDate: spentAt,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Currency != DefaultCurrency {
		t.Fatalf("expected default currency, got %q", created.Currency)
	}
}

func TestCreateExpenseUppercasesCurrency(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := NewService(repo)

	created, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		TripID:      1,
		Description: "Dinner",
		Amount:      42.5,
		Currency:    "eur",
		SpentAtDate: spentAt,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Currency != "EUR" {
		t.Fatalf("expected EUR, got %q", created.Currency)
	}
}

func TestCreateExpenseEnvelopeTripMismatch(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := NewService(repo)

	envelope, err := svc.CreateEnvelope(context.Background(), CreateEnvelopeInput{TripID: 2, Category: "Food"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = svc.CreateExpense(context.Background(), CreateExpenseInput{
		TripID:      1,
		EnvelopeID:  &envelope.ID,
		Description: "Dinner",
		Amount:      10,
		SpentAtDate: spentAt,
	})
	if !errors.Is(err, ErrEnvelopeTripMismatch) {
		t.Fatalf("expected ErrEnvelopeTripMismatch, got %v", err)
	}
}

func TestCreateExpenseMissingEnvelope(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := NewService(repo)

	missing := uint(99)
	_, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		TripID:      1,
		EnvelopeID:  &missing,
		Description: "Dinner",
		Amount:      10,
		SpentAtDate: spentAt,
	})
	if !errors.Is(err, ErrEnvelopeNotFound) {
		t.Fatalf("expected ErrEnvelopeNotFound, got %v", err)
	}
}

func TestUpdateExpenseReassignsEnvelopeSameTrip(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := NewService(repo)

	envelope, _ := svc.CreateEnvelope(context.Background(), CreateEnvelopeInput{TripID: 1, Category: "Food"})
	expense, _ := svc.CreateExpense(context.Background(), CreateExpenseInput{
		TripID:      1,
		Description: "Dinner",
		Amount:      10,
		SpentAtDate: spentAt,
	})

	updated, err := svc.UpdateExpense(context.Background(), expense.ID, UpdateExpenseInput{EnvelopeID: &envelope.ID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.EnvelopeID == nil || *updated.EnvelopeID != envelope.ID {
		t.Fatalf("expected envelope %d, got %+v", envelope.ID, updated.EnvelopeID)
	}
	if updated.Description != "Dinner" {
		t.Fatalf("expected description untouched, got %q", updated.Description)
	}
}

func TestUpdateEnvelopePartial(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := NewService(repo)

	envelope, _ := svc.CreateEnvelope(context.Background(), CreateEnvelopeInput{TripID: 1, Category: "Food", PlannedAmount: 100})

	amount := 250.0
	updated, err := svc.UpdateEnvelope(context.Background(), envelope.ID, UpdateEnvelopeInput{PlannedAmount: &amount})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.PlannedAmount != 250 {
		t.Fatalf("expected planned 250, got %v", updated.PlannedAmount)
	}
	if updated.Category != "Food" {
		t.Fatalf("expected category untouched, got %q", updated.Category)
	}
}

func TestDeleteEnvelopeMissing(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := NewService(repo)

	if err := svc.DeleteEnvelope(context.Background(), 42); !errors.Is(err, ErrEnvelopeNotFound) {
		t.Fatalf("expected ErrEnvelopeNotFound, got %v", err)
	}
}

func TestDeleteExpenseMissing(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := NewService(repo)

	if err := svc.DeleteExpense(context.Background(), 42); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
}
