package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/websocket"
)

// BudgetService handles budget-related business logic
type BudgetService struct {
	budgetRepo domain.BudgetRepository
	publisher  websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, publisher websocket.EventPublisher) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
		publisher:  publisher,
	}
}

// BudgetInput holds the input for creating or updating a budget
type BudgetInput struct {
	Name      string
	Amount    decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
}

func validateBudgetInput(input *BudgetInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return domain.ErrNameRequired
	}
	if len(input.Name) > domain.MaxBudgetNameLength {
		return domain.ErrNameTooLong
	}
	if input.Amount.LessThan(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if input.StartDate.After(input.EndDate) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// CreateBudget creates a new budget with validation
func (s *BudgetService) CreateBudget(userID uuid.UUID, input BudgetInput) (*domain.Budget, error) {
	if err := validateBudgetInput(&input); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Create(&domain.Budget{
		UserID:    userID,
		Name:      input.Name,
		Amount:    input.Amount,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(userID, websocket.BudgetCreated(budget))
	return budget, nil
}

// GetBudget retrieves a single budget
func (s *BudgetService) GetBudget(userID uuid.UUID, id int32) (*domain.Budget, error) {
	return s.budgetRepo.GetByID(userID, id)
}

// GetBudgets retrieves all budgets for a user
func (s *BudgetService) GetBudgets(userID uuid.UUID) ([]*domain.Budget, error) {
	return s.budgetRepo.GetAllByUser(userID)
}

// UpdateBudget replaces a budget's details
func (s *BudgetService) UpdateBudget(userID uuid.UUID, id int32, input BudgetInput) (*domain.Budget, error) {
	if err := validateBudgetInput(&input); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Update(userID, id, &domain.Budget{
		Name:      input.Name,
		Amount:    input.Amount,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(userID, websocket.BudgetUpdated(budget))
	return budget, nil
}

// DeleteBudget removes a budget
func (s *BudgetService) DeleteBudget(userID uuid.UUID, id int32) error {
	if err := s.budgetRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publisher.Publish(userID, websocket.BudgetDeleted(map[string]int32{"id": id}))
	return nil
}

// GetProgress computes a budget's spend figures from all the user's posted
// expenses dated within its window. The figures are always derived fresh
// from the ledger.
func (s *BudgetService) GetProgress(userID uuid.UUID, id int32) (*domain.BudgetProgress, error) {
	budget, err := s.budgetRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	spent, err := s.budgetRepo.SumExpensesInWindow(userID, budget.StartDate, budget.EndDate)
	if err != nil {
		return nil, err
	}

	return &domain.BudgetProgress{
		Budget:          budget,
		Spent:           spent,
		Remaining:       budget.Remaining(spent),
		ProgressPercent: budget.Progress(spent),
	}, nil
}
