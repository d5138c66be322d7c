package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/testutil"
)

func newCategoryFixture() (uuid.UUID, *CategoryService, *testutil.MockTransactionRepository, *testutil.MockWalletRepository) {
	userID := uuid.New()
	walletRepo := testutil.NewMockWalletRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository(walletRepo, categoryRepo)
	svc := NewCategoryService(categoryRepo, transactionRepo, &testutil.MockPublisher{})
	return userID, svc, transactionRepo, walletRepo
}

func TestCreateCategory_TrimsName(t *testing.T) {
	userID, svc, _, _ := newCategoryFixture()

	category, err := svc.CreateCategory(userID, "  Groceries  ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if category.Name != "Groceries" {
		t.Errorf("Expected trimmed name, got %q", category.Name)
	}
}

func TestCreateCategory_Validation(t *testing.T) {
	userID, svc, _, _ := newCategoryFixture()

	if _, err := svc.CreateCategory(userID, "   "); !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
	if _, err := svc.CreateCategory(userID, strings.Repeat("a", domain.MaxCategoryNameLength+1)); !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	userID, svc, _, _ := newCategoryFixture()

	if _, err := svc.CreateCategory(userID, "Groceries"); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	if _, err := svc.CreateCategory(userID, "Groceries"); !errors.Is(err, domain.ErrCategoryAlreadyExists) {
		t.Errorf("Expected ErrCategoryAlreadyExists, got %v", err)
	}

	// The same name is fine for a different user
	if _, err := svc.CreateCategory(uuid.New(), "Groceries"); err != nil {
		t.Errorf("Expected other user to reuse the name, got %v", err)
	}
}

func TestUpdateCategory_DuplicateName(t *testing.T) {
	userID, svc, _, _ := newCategoryFixture()

	if _, err := svc.CreateCategory(userID, "Groceries"); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	second, err := svc.CreateCategory(userID, "Rent")
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	if _, err := svc.UpdateCategory(userID, second.ID, "Groceries"); !errors.Is(err, domain.ErrCategoryAlreadyExists) {
		t.Errorf("Expected ErrCategoryAlreadyExists, got %v", err)
	}
}

func TestDeleteCategory_InUse(t *testing.T) {
	userID, svc, transactionRepo, walletRepo := newCategoryFixture()

	category, err := svc.CreateCategory(userID, "Groceries")
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	if _, err := walletRepo.Create(&domain.Wallet{
		UserID:  userID,
		Name:    "Main",
		Type:    domain.WalletTypeBank,
		Balance: decimal.RequireFromString("100"),
	}); err != nil {
		t.Fatalf("Failed to seed wallet: %v", err)
	}
	if _, err := transactionRepo.Post(&domain.Transaction{
		UserID:     userID,
		WalletID:   1,
		CategoryID: category.ID,
		Amount:     decimal.RequireFromString("10"),
		Type:       domain.TransactionTypeExpense,
	}); err != nil {
		t.Fatalf("Failed to post transaction: %v", err)
	}

	err = svc.DeleteCategory(userID, category.ID)
	if !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("Expected ErrCategoryInUse, got %v", err)
	}

	if _, err := svc.GetCategory(userID, category.ID); err != nil {
		t.Errorf("Expected category to survive the failed delete, got %v", err)
	}
}

func TestDeleteCategory_Unused(t *testing.T) {
	userID, svc, _, _ := newCategoryFixture()

	category, err := svc.CreateCategory(userID, "Groceries")
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	if err := svc.DeleteCategory(userID, category.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := svc.GetCategory(userID, category.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound after delete, got %v", err)
	}
}
