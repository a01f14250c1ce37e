package budget

import (
	"context"
	"errors"

	budgetdomain "trip-planner-go/internal/domain/budget"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateEnvelope(ctx context.Context, envelope *budgetdomain.BudgetEnvelope) error {
	return r.db.WithContext(ctx).Create(envelope).Error
}

func (r *PostgresRepository) ListEnvelopesByTrip(ctx context.Context, tripID uint) ([]budgetdomain.BudgetEnvelope, error) {
	var envelopes []budgetdomain.BudgetEnvelope
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("id").
		Find(&envelopes).Error; err != nil {
		return nil, err
	}
	return envelopes, nil
}

func (r *PostgresRepository) GetEnvelopeByID(ctx context.Context, envelopeID uint) (*budgetdomain.BudgetEnvelope, error) {
	var envelope budgetdomain.BudgetEnvelope
	if err := r.db.WithContext(ctx).First(&envelope, "id = ?", envelopeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetdomain.ErrEnvelopeNotFound
		}
		return nil, err
	}
	return &envelope, nil
}

func (r *PostgresRepository) UpdateEnvelope(ctx context.Context, envelope *budgetdomain.BudgetEnvelope) error {
	return r.db.WithContext(ctx).
		Model(&budgetdomain.BudgetEnvelope{}).
		Where("id = ?", envelope.ID).
		Updates(map[string]interface{}{
			"category":       envelope.Category,
			"planned_amount": envelope.PlannedAmount,
			"notes":          envelope.Notes,
			"updated_at":     envelope.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteEnvelope(ctx context.Context, envelopeID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&budgetdomain.BudgetEnvelope{}, "id = ?", envelopeID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *budgetdomain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *PostgresRepository) ListExpensesByTrip(ctx context.Context, tripID uint) ([]budgetdomain.Expense, error) {
	var expenses []budgetdomain.Expense
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("spent_at_date asc, id asc").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *PostgresRepository) GetExpenseByID(ctx context.Context, expenseID uint) (*budgetdomain.Expense, error) {
	var expense budgetdomain.Expense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetdomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *PostgresRepository) UpdateExpense(ctx context.Context, expense *budgetdomain.Expense) error {
	return r.db.WithContext(ctx).
		Model(&budgetdomain.Expense{}).
		Where("id = ?", expense.ID).
		Updates(map[string]interface{}{
			"envelope_id":   expense.EnvelopeID,
			"event_id":      expense.EventID,
			"description":   expense.Description,
			"amount":        expense.Amount,
			"currency":      expense.Currency,
			"spent_at_date": expense.SpentAtDate,
			"updated_at":    expense.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, expenseID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&budgetdomain.Expense{}, "id = ?", expenseID)
	return result.RowsAffected > 0, result.Error
}
