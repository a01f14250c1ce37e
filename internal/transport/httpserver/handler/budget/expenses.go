package budget

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	budgetdomain "trip-planner-go/internal/domain/budget"
	"trip-planner-go/internal/transport/httpserver/middleware"
)

type createExpenseRequest struct {
	TripID      uint    `json:"trip_id"`
	EnvelopeID  *uint   `json:"envelope_id"`
	EventID     *uint   `json:"event_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	SpentAtDate string  `json:"spent_at_date"`
}

type updateExpenseRequest struct {
	EnvelopeID  *uint    `json:"envelope_id"`
	EventID     *uint    `json:"event_id"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Currency    *string  `json:"currency"`
	SpentAtDate *string  `json:"spent_at_date"`
}

type expenseResponse struct {
	ID          uint      `json:"id"`
	TripID      uint      `json:"trip_id"`
	EnvelopeID  *uint     `json:"envelope_id"`
	EventID     *uint     `json:"event_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	SpentAtDate string    `json:"spent_at_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if req.TripID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "trip_id is required")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "description is required")
		return
	}
	if req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must not be negative")
		return
	}
	spentAt, err := parseDateRequired(req.SpentAtDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid spent_at_date")
		return
	}

	if _, err := h.Trips.GetForViewer(r.Context(), req.TripID, userID); err != nil {
		h.writeTripError(w, "expenses.create", err, userID, req.TripID)
		return
	}

	created, err := h.Budget.CreateExpense(r.Context(), budgetdomain.CreateExpenseInput{
		TripID:      req.TripID,
		EnvelopeID:  req.EnvelopeID,
		EventID:     req.EventID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		SpentAtDate: spentAt,
	})
	if err != nil {
		h.writeExpenseError(w, "expenses.create", err, userID, req.TripID)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(*created))
}

func (h *Handlers) ListTripExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid trip id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if _, err := h.Trips.GetForViewer(r.Context(), tripID, userID); err != nil {
		h.writeTripError(w, "expenses.list", err, userID, tripID)
		return
	}

	items, err := h.Budget.ListExpenses(r.Context(), tripID)
	if err != nil {
		h.log.InternalError("expenses.list: list expenses failed", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]expenseResponse, 0, len(items))
	for _, expense := range items {
		response = append(response, toExpenseResponse(expense))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	expenseID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid expense id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if req.Amount != nil && *req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must not be negative")
		return
	}
	spentAt, err := parseDateOptional(req.SpentAtDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid spent_at_date")
		return
	}

	expense, err := h.expenseForViewer(w, r, "expenses.update", expenseID, userID)
	if err != nil {
		return
	}

	updated, err := h.Budget.UpdateExpense(r.Context(), expense.ID, budgetdomain.UpdateExpenseInput{
		EnvelopeID:  req.EnvelopeID,
		EventID:     req.EventID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		SpentAtDate: spentAt,
	})
	if err != nil {
		h.writeExpenseError(w, "expenses.update", err, userID, expense.TripID)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(*updated))
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid expense id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	expense, err := h.expenseForViewer(w, r, "expenses.delete", expenseID, userID)
	if err != nil {
		return
	}

	if err := h.Budget.DeleteExpense(r.Context(), expense.ID); err != nil {
		if errors.Is(err, budgetdomain.ErrExpenseNotFound) {
			h.log.BusinessError("expenses.delete: expense not found", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("expenses.delete: delete expense failed", err, "user_id", userID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// expenseForViewer loads an expense and checks the caller can see its trip.
// The response is already written when an error comes back.
func (h *Handlers) expenseForViewer(w http.ResponseWriter, r *http.Request, op string, expenseID, userID uint) (*budgetdomain.Expense, error) {
	expense, err := h.Budget.GetExpense(r.Context(), expenseID)
	if err != nil {
		if errors.Is(err, budgetdomain.ErrExpenseNotFound) {
			h.log.BusinessError(op+": expense not found", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return nil, err
		}
		h.log.InternalError(op+": get expense failed", err, "user_id", userID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return nil, err
	}

	if _, err := h.Trips.GetForViewer(r.Context(), expense.TripID, userID); err != nil {
		h.writeTripError(w, op, err, userID, expense.TripID)
		return nil, err
	}
	return expense, nil
}

// writeExpenseError covers the failures shared by expense create and update.
func (h *Handlers) writeExpenseError(w http.ResponseWriter, op string, err error, userID, tripID uint) {
	switch {
	case errors.Is(err, budgetdomain.ErrEnvelopeNotFound):
		h.log.BusinessError(op+": envelope not found", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusNotFound, "envelope_not_found", "envelope not found")
	case errors.Is(err, budgetdomain.ErrEnvelopeTripMismatch):
		h.log.BusinessError(op+": envelope belongs to another trip", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusBadRequest, "envelope_trip_mismatch", "envelope belongs to another trip")
	default:
		h.log.InternalError(op+": failed", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func toExpenseResponse(expense budgetdomain.Expense) expenseResponse {
	return expenseResponse{
		ID:          expense.ID,
		TripID:      expense.TripID,
		EnvelopeID:  expense.EnvelopeID,
		EventID:     expense.EventID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Currency:    expense.Currency,
		SpentAtDate: formatDate(expense.SpentAtDate),
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}
