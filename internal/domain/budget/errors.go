package budget

import "errors"

var (
	ErrEnvelopeNotFound = errors.New("envelope not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrEnvelopeTripMismatch = errors.New("envelope belongs to another trip")
)
