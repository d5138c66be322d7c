package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/websocket"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	walletRepo      domain.WalletRepository
	publisher       websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, walletRepo domain.WalletRepository, publisher websocket.EventPublisher) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		walletRepo:      walletRepo,
		publisher:       publisher,
	}
}

// TransactionInput holds the input for posting or updating a transaction
type TransactionInput struct {
	WalletID    int32
	CategoryID  int32
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Date        *time.Time
	Description *string
}

func validateTransactionInput(input *TransactionInput) error {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if !domain.ValidTransactionType(input.Type) {
		return domain.ErrInvalidTransactionType
	}
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			input.Description = nil
		} else {
			if len(trimmed) > domain.MaxDescriptionLength {
				return domain.ErrDescriptionTooLong
			}
			input.Description = &trimmed
		}
	}
	return nil
}

func transactionDate(input *TransactionInput) time.Time {
	if input.Date != nil {
		return *input.Date
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// PostTransaction validates and posts a transaction. The ledger insert and
// the wallet balance move commit together; an expense a wallet cannot cover
// fails with ErrInsufficientFunds and changes nothing.
func (s *TransactionService) PostTransaction(userID uuid.UUID, input TransactionInput) (*domain.Transaction, error) {
	if err := validateTransactionInput(&input); err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.Post(&domain.Transaction{
		UserID:      userID,
		WalletID:    input.WalletID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Type:        input.Type,
		Date:        transactionDate(&input),
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(userID, websocket.TransactionCreated(transaction))
	s.publishWallet(userID, transaction.WalletID)
	return transaction, nil
}

// GetTransaction retrieves a single transaction
func (s *TransactionService) GetTransaction(userID uuid.UUID, id int32) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(userID, id)
}

// GetTransactions retrieves all transactions for a user
func (s *TransactionService) GetTransactions(userID uuid.UUID) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetAllByUser(userID)
}

// GetTransactionsByWallet retrieves the transactions posted against one wallet.
// The wallet lookup doubles as the ownership check.
func (s *TransactionService) GetTransactionsByWallet(userID uuid.UUID, walletID int32) ([]*domain.Transaction, error) {
	if _, err := s.walletRepo.GetByID(userID, walletID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByWallet(userID, walletID)
}

// UpdateTransaction replaces a transaction's details. The old balance effect
// is reverted and the new one applied atomically.
func (s *TransactionService) UpdateTransaction(userID uuid.UUID, id int32, input TransactionInput) (*domain.Transaction, error) {
	if err := validateTransactionInput(&input); err != nil {
		return nil, err
	}

	existing, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.transactionRepo.Update(userID, id, &domain.UpdateTransactionData{
		WalletID:    input.WalletID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Type:        input.Type,
		Date:        transactionDate(&input),
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(userID, websocket.TransactionUpdated(updated))
	s.publishWallet(userID, updated.WalletID)
	if existing.WalletID != updated.WalletID {
		s.publishWallet(userID, existing.WalletID)
	}
	return updated, nil
}

// DeleteTransaction removes a transaction, reverting its balance effect
func (s *TransactionService) DeleteTransaction(userID uuid.UUID, id int32) error {
	existing, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publisher.Publish(userID, websocket.TransactionDeleted(map[string]int32{"id": id}))
	s.publishWallet(userID, existing.WalletID)
	return nil
}

// publishWallet broadcasts the wallet's state after a balance move so open
// clients see the new balance without refetching.
func (s *TransactionService) publishWallet(userID uuid.UUID, walletID int32) {
	wallet, err := s.walletRepo.GetByID(userID, walletID)
	if err != nil {
		return
	}
	s.publisher.Publish(userID, websocket.WalletUpdated(wallet))
}
