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

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the create/update transaction request body
type TransactionRequest struct {
	WalletID    int32   `json:"walletId"`
	CategoryID  int32   `json:"categoryId"`
	Amount      string  `json:"amount"`
	Type        string  `json:"type"`
	Date        string  `json:"date,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *TransactionHandler) bindInput(c echo.Context) (*service.TransactionInput, error) {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var date *time.Time
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return nil, NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		date = &parsed
	}

	return &service.TransactionInput{
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Amount:      amount,
		Type:        domain.TransactionType(req.Type),
		Date:        date,
		Description: req.Description,
	}, nil
}

// Add handles POST /api/Transactions/Add
func (h *TransactionHandler) Add(c echo.Context) error {
	userID := middleware.GetUserID(c)

	input, bindErr := h.bindInput(c)
	if bindErr != nil {
		return bindErr
	}

	transaction, err := h.transactionService.PostTransaction(userID, *input)
	if err != nil {
		if mapped := mapTransactionError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to post transaction")
		return NewInternalError(c, "Failed to post transaction")
	}

	log.Info().
		Str("user_id", userID.String()).
		Int32("transaction_id", transaction.ID).
		Int32("wallet_id", transaction.WalletID).
		Str("type", string(transaction.Type)).
		Msg("Transaction posted")

	return NewMessageResponse(c, http.StatusOK, "Transaction added successfully", transaction)
}

// GetAll handles GET /api/Transactions/GetAll
func (h *TransactionHandler) GetAll(c echo.Context) error {
	userID := middleware.GetUserID(c)

	transactions, err := h.transactionService.GetTransactions(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get transactions")
		return NewInternalError(c, "Failed to get transactions")
	}

	return emptyAsNotFound(c, transactions, "No transactions found")
}

// GetByID handles GET /api/Transactions/GetById/{id}
func (h *TransactionHandler) GetByID(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransaction(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("transaction_id", id).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, transaction)
}

// GetByWalletID handles GET /api/Transactions/GetByWalletId/{id}
func (h *TransactionHandler) GetByWalletID(c echo.Context) error {
	userID := middleware.GetUserID(c)

	walletID, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid wallet ID", nil)
	}

	transactions, err := h.transactionService.GetTransactionsByWallet(userID, walletID)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return NewNotFoundError(c, "Wallet not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("wallet_id", walletID).Msg("Failed to get transactions")
		return NewInternalError(c, "Failed to get transactions")
	}

	return emptyAsNotFound(c, transactions, "No transactions found for this wallet")
}

// Update handles PUT /api/Transactions/Update/{id}
func (h *TransactionHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	input, bindErr := h.bindInput(c)
	if bindErr != nil {
		return bindErr
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, id, *input)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if mapped := mapTransactionError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("transaction_id", id).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	log.Info().Str("user_id", userID.String()).Int32("transaction_id", transaction.ID).Msg("Transaction updated")

	return NewMessageResponse(c, http.StatusOK, "Transaction updated successfully", transaction)
}

// Delete handles DELETE /api/Transactions/Delete/{id}
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return NewConflictError(c, "Deleting this transaction would drive the wallet balance negative")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	log.Info().Str("user_id", userID.String()).Int32("transaction_id", id).Msg("Transaction deleted")

	return NewMessageResponse(c, http.StatusOK, "Transaction deleted successfully", nil)
}

func mapTransactionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be greater than zero"},
		})
	case errors.Is(err, domain.ErrInvalidTransactionType):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: income, expense"},
		})
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 1000 characters or less"},
		})
	case errors.Is(err, domain.ErrWalletNotFound):
		return NewNotFoundError(c, "Wallet not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewNotFoundError(c, "Category not found")
	case errors.Is(err, domain.ErrInsufficientFunds):
		return NewConflictError(c, "Insufficient funds in wallet")
	}
	return nil
}
