package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/testutil"
)

type dashboardFixture struct {
	userID          uuid.UUID
	svc             *DashboardService
	walletRepo      *testutil.MockWalletRepository
	transactionRepo *testutil.MockTransactionRepository
	budgetRepo      *testutil.MockBudgetRepository
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()

	userID := uuid.New()
	walletRepo := testutil.NewMockWalletRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository(walletRepo, categoryRepo)
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetRepo.Transactions = transactionRepo

	if _, err := categoryRepo.Create(&domain.Category{UserID: userID, Name: "General"}); err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}

	return &dashboardFixture{
		userID:          userID,
		svc:             NewDashboardService(walletRepo, transactionRepo, budgetRepo),
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
	}
}

func (f *dashboardFixture) seedWallet(t *testing.T, name, balance string) {
	t.Helper()
	if _, err := f.walletRepo.Create(&domain.Wallet{
		UserID:  f.userID,
		Name:    name,
		Type:    domain.WalletTypeBank,
		Balance: decimal.RequireFromString(balance),
	}); err != nil {
		t.Fatalf("Failed to seed wallet: %v", err)
	}
}

func (f *dashboardFixture) post(t *testing.T, amount string, txType domain.TransactionType, on time.Time) {
	t.Helper()
	if _, err := f.transactionRepo.Post(&domain.Transaction{
		UserID:     f.userID,
		WalletID:   1,
		CategoryID: 1,
		Amount:     decimal.RequireFromString(amount),
		Type:       txType,
		Date:       on,
	}); err != nil {
		t.Fatalf("Failed to post transaction: %v", err)
	}
}

func TestGetSummaryForDate(t *testing.T) {
	f := newDashboardFixture(t)

	f.seedWallet(t, "Main", "1000")
	f.seedWallet(t, "Savings", "500")

	f.post(t, "300", domain.TransactionTypeIncome, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))
	f.post(t, "100", domain.TransactionTypeExpense, time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC))
	f.post(t, "999", domain.TransactionTypeIncome, time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC))

	summary, err := f.svc.GetSummaryForDate(f.userID, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(summary.Wallets) != 2 {
		t.Fatalf("Expected 2 wallet balances, got %d", len(summary.Wallets))
	}
	// Posted amounts moved the Main balance: 1000 + 300 - 100 + 999
	if !summary.TotalBalance.Equal(decimal.RequireFromString("2699")) {
		t.Errorf("Expected total balance 2699, got %s", summary.TotalBalance)
	}
	if !summary.MonthIncome.Equal(decimal.RequireFromString("300")) {
		t.Errorf("Expected month income 300, got %s", summary.MonthIncome)
	}
	if !summary.MonthExpense.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Expected month expense 100, got %s", summary.MonthExpense)
	}
	if !summary.MonthNet.Equal(decimal.RequireFromString("200")) {
		t.Errorf("Expected month net 200, got %s", summary.MonthNet)
	}
}

func TestGetSummaryForDate_IncludesBudgetProgress(t *testing.T) {
	f := newDashboardFixture(t)

	f.seedWallet(t, "Main", "1000")

	if _, err := f.budgetRepo.Create(&domain.Budget{
		UserID:    f.userID,
		Name:      "June spending",
		Amount:    decimal.RequireFromString("200"),
		StartDate: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("Failed to seed budget: %v", err)
	}

	f.post(t, "50", domain.TransactionTypeExpense, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))

	summary, err := f.svc.GetSummaryForDate(f.userID, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(summary.Budgets) != 1 {
		t.Fatalf("Expected 1 budget progress entry, got %d", len(summary.Budgets))
	}
	progress := summary.Budgets[0]
	if !progress.Spent.Equal(decimal.RequireFromString("50")) {
		t.Errorf("Expected spent 50, got %s", progress.Spent)
	}
	if !progress.Remaining.Equal(decimal.RequireFromString("150")) {
		t.Errorf("Expected remaining 150, got %s", progress.Remaining)
	}
	if !progress.ProgressPercent.Equal(decimal.RequireFromString("25")) {
		t.Errorf("Expected progress 25, got %s", progress.ProgressPercent)
	}
}

func TestGetSummaryForDate_NoWallets(t *testing.T) {
	f := newDashboardFixture(t)

	summary, err := f.svc.GetSummaryForDate(f.userID, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(summary.Wallets) != 0 {
		t.Errorf("Expected no wallet balances, got %d", len(summary.Wallets))
	}
	if !summary.TotalBalance.IsZero() || !summary.MonthIncome.IsZero() || !summary.MonthExpense.IsZero() || !summary.MonthNet.IsZero() {
		t.Errorf("Expected all-zero summary, got %+v", summary)
	}
	if len(summary.Budgets) != 0 {
		t.Errorf("Expected no budget progress entries, got %d", len(summary.Budgets))
	}
}
