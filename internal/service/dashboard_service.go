package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/util"
)

// DashboardService handles dashboard-related business logic
type DashboardService struct {
	walletRepo      domain.WalletRepository
	transactionRepo domain.TransactionRepository
	budgetRepo      domain.BudgetRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(walletRepo domain.WalletRepository, transactionRepo domain.TransactionRepository, budgetRepo domain.BudgetRepository) *DashboardService {
	return &DashboardService{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
	}
}

// GetSummary returns the user's overview for the current month
func (s *DashboardService) GetSummary(userID uuid.UUID) (*domain.DashboardSummary, error) {
	return s.GetSummaryForDate(userID, time.Now().UTC())
}

// GetSummaryForDate returns the user's overview for the month containing at
func (s *DashboardService) GetSummaryForDate(userID uuid.UUID, at time.Time) (*domain.DashboardSummary, error) {
	wallets, err := s.walletRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}

	balances := make([]*domain.WalletBalance, len(wallets))
	totalBalance := decimal.Zero
	for i, w := range wallets {
		balances[i] = &domain.WalletBalance{
			WalletID: w.ID,
			Name:     w.Name,
			Type:     w.Type,
			Balance:  w.Balance,
		}
		totalBalance = totalBalance.Add(w.Balance)
	}

	monthStart, monthEnd := util.MonthRange(at)

	income, err := s.transactionRepo.SumByTypeAndDateRange(userID, monthStart, monthEnd, domain.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}
	expense, err := s.transactionRepo.SumByTypeAndDateRange(userID, monthStart, monthEnd, domain.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	progress, err := s.budgetProgress(userID)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		Wallets:      balances,
		TotalBalance: totalBalance,
		MonthIncome:  income,
		MonthExpense: expense,
		MonthNet:     income.Sub(expense),
		Budgets:      progress,
	}, nil
}

// budgetProgress derives the spend figures for each of the user's budgets
func (s *DashboardService) budgetProgress(userID uuid.UUID) ([]*domain.BudgetProgress, error) {
	budgets, err := s.budgetRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}

	progress := make([]*domain.BudgetProgress, len(budgets))
	for i, b := range budgets {
		spent, err := s.budgetRepo.SumExpensesInWindow(userID, b.StartDate, b.EndDate)
		if err != nil {
			return nil, err
		}
		progress[i] = &domain.BudgetProgress{
			Budget:          b,
			Spent:           spent,
			Remaining:       b.Remaining(spent),
			ProgressPercent: b.Progress(spent),
		}
	}
	return progress, nil
}
