package budget

import "time"

const DefaultCurrency = "USD"

type BudgetEnvelope struct {
	ID            uint      `gorm:"primaryKey"`
	TripID        uint      `gorm:"index;not null"`
	Category      string    `gorm:"not null"`
	PlannedAmount float64   `gorm:"type:numeric(12,2);not null"`
	Notes         *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

type Expense struct {
	ID          uint      `gorm:"primaryKey"`
	TripID      uint      `gorm:"index;not null"`
	EnvelopeID  *uint     `gorm:"index"`
	EventID     *uint     `gorm:"index"`
	Description string    `gorm:"not null"`
	Amount      float64   `gorm:"type:numeric(12,2);not null"`
	Currency    string    `gorm:"size:3;not null;default:'USD'"`
	SpentAtDate time.Time `gorm:"type:date;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type CreateEnvelopeInput struct {
	TripID        uint
	Category      string
	PlannedAmount float64
	Notes         *string
}

// UpdateEnvelopeInput applies only the fields that are set.
type UpdateEnvelopeInput struct {
	Category      *string
	PlannedAmount *float64
	Notes         *string
}

type CreateExpenseInput struct {
	TripID      uint
	EnvelopeID  *uint
	EventID     *uint
	Description string
	Amount      float64
	Currency    string
	SpentAtDate time.Time
}

// UpdateExpenseInput applies only the fields that are set.
type UpdateExpenseInput struct {
	EnvelopeID  *uint
	EventID     *uint
	Description *string
	Amount      *float64
	Currency    *string
	SpentAtDate *time.Time
}
