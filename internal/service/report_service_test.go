package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/testutil"
)

func newReportFixture(t *testing.T) (uuid.UUID, *ReportService, *testutil.MockTransactionRepository) {
	t.Helper()

	userID := uuid.New()
	walletRepo := testutil.NewMockWalletRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository(walletRepo, categoryRepo)
	reportRepo := testutil.NewMockReportRepository()

	if _, err := walletRepo.Create(&domain.Wallet{
		UserID:  userID,
		Name:    "Main",
		Type:    domain.WalletTypeBank,
		Balance: decimal.RequireFromString("10000"),
	}); err != nil {
		t.Fatalf("Failed to seed wallet: %v", err)
	}
	if _, err := categoryRepo.Create(&domain.Category{UserID: userID, Name: "General"}); err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}

	svc := NewReportService(reportRepo, transactionRepo, &testutil.MockPublisher{})
	return userID, svc, transactionRepo
}

func postReportTx(t *testing.T, repo *testutil.MockTransactionRepository, userID uuid.UUID, amount string, txType domain.TransactionType, on time.Time) {
	t.Helper()
	if _, err := repo.Post(&domain.Transaction{
		UserID:     userID,
		WalletID:   1,
		CategoryID: 1,
		Amount:     decimal.RequireFromString(amount),
		Type:       txType,
		Date:       on,
	}); err != nil {
		t.Fatalf("Failed to post transaction: %v", err)
	}
}

func januaryReportInput() ReportInput {
	return ReportInput{
		Description: "January",
		From:        time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateReport_ComputesTotals(t *testing.T) {
	userID, svc, transactionRepo := newReportFixture(t)

	postReportTx(t, transactionRepo, userID, "1000", domain.TransactionTypeIncome, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC))
	postReportTx(t, transactionRepo, userID, "300", domain.TransactionTypeExpense, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC))
	postReportTx(t, transactionRepo, userID, "999", domain.TransactionTypeIncome, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC))

	report, err := svc.CreateReport(userID, januaryReportInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !report.TotalIncome.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("Expected total income 1000, got %s", report.TotalIncome)
	}
	if !report.TotalExpense.Equal(decimal.RequireFromString("300")) {
		t.Errorf("Expected total expense 300, got %s", report.TotalExpense)
	}
	if !report.NetBalance.Equal(decimal.RequireFromString("700")) {
		t.Errorf("Expected net balance 700, got %s", report.NetBalance)
	}
}

func TestCreateReport_ScopedToOwner(t *testing.T) {
	userID, svc, transactionRepo := newReportFixture(t)

	// Another user's postings must not leak into this user's totals
	otherUser := uuid.New()
	if _, err := transactionRepo.Wallets.Create(&domain.Wallet{
		UserID:  otherUser,
		Name:    "Other",
		Type:    domain.WalletTypeBank,
		Balance: decimal.RequireFromString("1000"),
	}); err != nil {
		t.Fatalf("Failed to seed wallet: %v", err)
	}
	if _, err := transactionRepo.Categories.Create(&domain.Category{UserID: otherUser, Name: "General"}); err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	if _, err := transactionRepo.Post(&domain.Transaction{
		UserID:     otherUser,
		WalletID:   2,
		CategoryID: 2,
		Amount:     decimal.RequireFromString("500"),
		Type:       domain.TransactionTypeIncome,
		Date:       time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("Failed to post transaction: %v", err)
	}

	report, err := svc.CreateReport(userID, januaryReportInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !report.TotalIncome.IsZero() {
		t.Errorf("Expected zero income, got %s", report.TotalIncome)
	}
}

func TestReport_SnapshotNotRewrittenByLaterPostings(t *testing.T) {
	userID, svc, transactionRepo := newReportFixture(t)

	postReportTx(t, transactionRepo, userID, "100", domain.TransactionTypeIncome, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC))

	report, err := svc.CreateReport(userID, januaryReportInput())
	if err != nil {
		t.Fatalf("Failed to create report: %v", err)
	}

	// Posting into the window after the snapshot leaves the stored totals alone
	postReportTx(t, transactionRepo, userID, "900", domain.TransactionTypeIncome, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC))

	fetched, err := svc.GetReport(userID, report.ID)
	if err != nil {
		t.Fatalf("Failed to get report: %v", err)
	}
	if !fetched.TotalIncome.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Expected snapshot income 100, got %s", fetched.TotalIncome)
	}
}

func TestUpdateReport_RecomputesTotals(t *testing.T) {
	userID, svc, transactionRepo := newReportFixture(t)

	postReportTx(t, transactionRepo, userID, "100", domain.TransactionTypeIncome, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC))

	report, err := svc.CreateReport(userID, januaryReportInput())
	if err != nil {
		t.Fatalf("Failed to create report: %v", err)
	}

	postReportTx(t, transactionRepo, userID, "900", domain.TransactionTypeIncome, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC))

	updated, err := svc.UpdateReport(userID, report.ID, januaryReportInput())
	if err != nil {
		t.Fatalf("Failed to update report: %v", err)
	}
	if !updated.TotalIncome.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("Expected recomputed income 1000, got %s", updated.TotalIncome)
	}
}

func TestCreateReport_Validation(t *testing.T) {
	userID, svc, _ := newReportFixture(t)

	input := januaryReportInput()
	input.Description = "  "
	if _, err := svc.CreateReport(userID, input); !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}

	input = januaryReportInput()
	input.From, input.To = input.To, input.From
	if _, err := svc.CreateReport(userID, input); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange, got %v", err)
	}
}
