package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/websocket"
)

// WalletService handles wallet-related business logic
type WalletService struct {
	walletRepo domain.WalletRepository
	publisher  websocket.EventPublisher
}

// NewWalletService creates a new WalletService
func NewWalletService(walletRepo domain.WalletRepository, publisher websocket.EventPublisher) *WalletService {
	return &WalletService{
		walletRepo: walletRepo,
		publisher:  publisher,
	}
}

// CreateWalletInput holds the input for creating a wallet
type CreateWalletInput struct {
	Name           string
	Type           domain.WalletType
	InitialBalance decimal.Decimal
}

// CreateWallet creates a new wallet with validation
func (s *WalletService) CreateWallet(userID uuid.UUID, input CreateWalletInput) (*domain.Wallet, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxWalletNameLength {
		return nil, domain.ErrNameTooLong
	}

	if !domain.ValidWalletType(input.Type) {
		return nil, domain.ErrInvalidWalletType
	}

	if input.InitialBalance.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	wallet, err := s.walletRepo.Create(&domain.Wallet{
		UserID:  userID,
		Name:    name,
		Type:    input.Type,
		Balance: input.InitialBalance,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(userID, websocket.WalletCreated(wallet))
	return wallet, nil
}

// GetWallet retrieves a single wallet
func (s *WalletService) GetWallet(userID uuid.UUID, id int32) (*domain.Wallet, error) {
	return s.walletRepo.GetByID(userID, id)
}

// GetWallets retrieves all wallets for a user
func (s *WalletService) GetWallets(userID uuid.UUID) ([]*domain.Wallet, error) {
	return s.walletRepo.GetAllByUser(userID)
}

// UpdateWallet updates a wallet's name and type
func (s *WalletService) UpdateWallet(userID uuid.UUID, id int32, name string, walletType domain.WalletType) (*domain.Wallet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxWalletNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !domain.ValidWalletType(walletType) {
		return nil, domain.ErrInvalidWalletType
	}

	wallet, err := s.walletRepo.Update(userID, id, name, walletType)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(userID, websocket.WalletUpdated(wallet))
	return wallet, nil
}

// DeleteWallet removes a wallet. Wallets with posted transactions are kept
// and the delete fails with ErrWalletHasTransactions.
func (s *WalletService) DeleteWallet(userID uuid.UUID, id int32) error {
	if err := s.walletRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publisher.Publish(userID, websocket.WalletDeleted(map[string]int32{"id": id}))
	return nil
}
