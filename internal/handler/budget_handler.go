package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/middleware"
	"github.com/smartbudget/smartbudget-backend/internal/service"
)

// dateLayout is the wire format for calendar dates
const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the create/update budget request body
type BudgetRequest struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (h *BudgetHandler) bindInput(c echo.Context) (*service.BudgetInput, error) {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, NewValidationError(c, "Invalid start date", []ValidationError{
			{Field: "startDate", Message: "Must be a date in YYYY-MM-DD format"},
		})
	}

	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, NewValidationError(c, "Invalid end date", []ValidationError{
			{Field: "endDate", Message: "Must be a date in YYYY-MM-DD format"},
		})
	}

	return &service.BudgetInput{
		Name:      req.Name,
		Amount:    amount,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// Add handles POST /api/Budgets/Add
func (h *BudgetHandler) Add(c echo.Context) error {
	userID := middleware.GetUserID(c)

	input, bindErr := h.bindInput(c)
	if bindErr != nil {
		return bindErr
	}

	budget, err := h.budgetService.CreateBudget(userID, *input)
	if err != nil {
		if mapped := mapBudgetError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	log.Info().Str("user_id", userID.String()).Int32("budget_id", budget.ID).Str("name", budget.Name).Msg("Budget created")

	return NewMessageResponse(c, http.StatusOK, "Budget created successfully", budget)
}

// GetAll handles GET /api/Budgets/GetAll
func (h *BudgetHandler) GetAll(c echo.Context) error {
	userID := middleware.GetUserID(c)

	budgets, err := h.budgetService.GetBudgets(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get budgets")
		return NewInternalError(c, "Failed to get budgets")
	}

	return emptyAsNotFound(c, budgets, "No budgets found")
}

// GetByID handles GET /api/Budgets/GetById/{id}
func (h *BudgetHandler) GetByID(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	budget, err := h.budgetService.GetBudget(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", id).Msg("Failed to get budget")
		return NewInternalError(c, "Failed to get budget")
	}

	return c.JSON(http.StatusOK, budget)
}

// GetProgress handles GET /api/Budgets/GetProgress/{id}
func (h *BudgetHandler) GetProgress(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	progress, err := h.budgetService.GetProgress(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", id).Msg("Failed to get budget progress")
		return NewInternalError(c, "Failed to get budget progress")
	}

	return c.JSON(http.StatusOK, progress)
}

// Update handles PUT /api/Budgets/Update/{id}
func (h *BudgetHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	input, bindErr := h.bindInput(c)
	if bindErr != nil {
		return bindErr
	}

	budget, err := h.budgetService.UpdateBudget(userID, id, *input)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		if mapped := mapBudgetError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", id).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}

	log.Info().Str("user_id", userID.String()).Int32("budget_id", budget.ID).Msg("Budget updated")

	return NewMessageResponse(c, http.StatusOK, "Budget updated successfully", budget)
}

// Delete handles DELETE /api/Budgets/Delete/{id}
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(userID, id); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", id).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	log.Info().Str("user_id", userID.String()).Int32("budget_id", id).Msg("Budget deleted")

	return NewMessageResponse(c, http.StatusOK, "Budget deleted successfully", nil)
}

func mapBudgetError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must not be negative"},
		})
	case errors.Is(err, domain.ErrInvalidDateRange):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "startDate", Message: "Start date must not be after end date"},
		})
	}
	return nil
}
