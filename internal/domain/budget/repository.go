package budget

import "context"

type Repository interface {
	CreateEnvelope(ctx context.Context, envelope *BudgetEnvelope) error
	ListEnvelopesByTrip(ctx context.Context, tripID uint) ([]BudgetEnvelope, error)
	GetEnvelopeByID(ctx context.Context, envelopeID uint) (*BudgetEnvelope, error)
	UpdateEnvelope(ctx context.Context, envelope *BudgetEnvelope) error
	DeleteEnvelope(ctx context.Context, envelopeID uint) (bool, error)
	CreateExpense(ctx context.Context, expense *Expense) error
	ListExpensesByTrip(ctx context.Context, tripID uint) ([]Expense, error)
	GetExpenseByID(ctx context.Context, expenseID uint) (*Expense, error)
	UpdateExpense(ctx context.Context, expense *Expense) error
	DeleteExpense(ctx context.Context, expenseID uint) (bool, error)
}
