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

func newWalletFixture() (uuid.UUID, *WalletService, *testutil.MockWalletRepository, *testutil.MockPublisher) {
	userID := uuid.New()
	walletRepo := testutil.NewMockWalletRepository()
	publisher := &testutil.MockPublisher{}
	return userID, NewWalletService(walletRepo, publisher), walletRepo, publisher
}

func TestCreateWallet_Success(t *testing.T) {
	userID, svc, _, publisher := newWalletFixture()

	wallet, err := svc.CreateWallet(userID, CreateWalletInput{
		Name:           "  Savings  ",
		Type:           domain.WalletTypeBank,
		InitialBalance: decimal.RequireFromString("250.50"),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if wallet.Name != "Savings" {
		t.Errorf("Expected trimmed name, got %q", wallet.Name)
	}
	if !wallet.Balance.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("Expected balance 250.50, got %s", wallet.Balance)
	}

	types := publisher.EventTypes()
	if len(types) != 1 || types[0] != "wallet.created" {
		t.Errorf("Expected wallet.created published, got %v", types)
	}
}

func TestCreateWallet_Validation(t *testing.T) {
	userID, svc, _, _ := newWalletFixture()

	cases := []struct {
		name  string
		input CreateWalletInput
		want  error
	}{
		{
			name:  "empty name",
			input: CreateWalletInput{Name: "   ", Type: domain.WalletTypeBank},
			want:  domain.ErrNameRequired,
		},
		{
			name:  "name too long",
			input: CreateWalletInput{Name: strings.Repeat("a", domain.MaxWalletNameLength+1), Type: domain.WalletTypeBank},
			want:  domain.ErrNameTooLong,
		},
		{
			name:  "bad type",
			input: CreateWalletInput{Name: "Savings", Type: "crypto"},
			want:  domain.ErrInvalidWalletType,
		},
		{
			name:  "negative balance",
			input: CreateWalletInput{Name: "Savings", Type: domain.WalletTypeCash, InitialBalance: decimal.RequireFromString("-1")},
			want:  domain.ErrInvalidAmount,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateWallet(userID, tc.input)
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUpdateWallet_ChangesNameAndType(t *testing.T) {
	userID, svc, _, _ := newWalletFixture()

	wallet, err := svc.CreateWallet(userID, CreateWalletInput{Name: "Savings", Type: domain.WalletTypeBank})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}

	updated, err := svc.UpdateWallet(userID, wallet.ID, "Pocket money", domain.WalletTypeCash)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Name != "Pocket money" || updated.Type != domain.WalletTypeCash {
		t.Errorf("Expected updated name and type, got %q/%s", updated.Name, updated.Type)
	}
}

func TestDeleteWallet_BlockedByTransactions(t *testing.T) {
	userID, svc, walletRepo, _ := newWalletFixture()

	wallet, err := svc.CreateWallet(userID, CreateWalletInput{Name: "Savings", Type: domain.WalletTypeBank})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}
	walletRepo.HasTransactions[wallet.ID] = true

	err = svc.DeleteWallet(userID, wallet.ID)
	if !errors.Is(err, domain.ErrWalletHasTransactions) {
		t.Fatalf("Expected ErrWalletHasTransactions, got %v", err)
	}

	if _, err := svc.GetWallet(userID, wallet.ID); err != nil {
		t.Errorf("Expected wallet to survive the failed delete, got %v", err)
	}
}

func TestDeleteWallet_Success(t *testing.T) {
	userID, svc, _, _ := newWalletFixture()

	wallet, err := svc.CreateWallet(userID, CreateWalletInput{Name: "Savings", Type: domain.WalletTypeBank})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}

	if err := svc.DeleteWallet(userID, wallet.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := svc.GetWallet(userID, wallet.ID); !errors.Is(err, domain.ErrWalletNotFound) {
		t.Errorf("Expected ErrWalletNotFound after delete, got %v", err)
	}
}

func TestDeleteWallet_OtherUsersWalletInvisible(t *testing.T) {
	userID, svc, _, _ := newWalletFixture()

	wallet, err := svc.CreateWallet(userID, CreateWalletInput{Name: "Savings", Type: domain.WalletTypeBank})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}

	if err := svc.DeleteWallet(uuid.New(), wallet.ID); !errors.Is(err, domain.ErrWalletNotFound) {
		t.Errorf("Expected ErrWalletNotFound for foreign wallet, got %v", err)
	}
}
