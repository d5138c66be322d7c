package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/middleware"
	"github.com/smartbudget/smartbudget-backend/internal/service"
)

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// WalletRequest represents the create/update wallet request body
type WalletRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	InitialBalance string `json:"initialBalance,omitempty"`
}

// parseEntityID parses the {id} path parameter as an int32
func parseEntityID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}

// Add handles POST /api/Wallets/Add
func (h *WalletHandler) Add(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req WalletRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	initialBalance := decimal.Zero
	if req.InitialBalance != "" {
		var err error
		initialBalance, err = decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return NewValidationError(c, "Invalid initial balance", []ValidationError{
				{Field: "initialBalance", Message: "Must be a valid decimal number"},
			})
		}
	}

	wallet, err := h.walletService.CreateWallet(userID, service.CreateWalletInput{
		Name:           req.Name,
		Type:           domain.WalletType(req.Type),
		InitialBalance: initialBalance,
	})
	if err != nil {
		if mapped := mapWalletValidationError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create wallet")
		return NewInternalError(c, "Failed to create wallet")
	}

	log.Info().Str("user_id", userID.String()).Int32("wallet_id", wallet.ID).Str("name", wallet.Name).Msg("Wallet created")

	return NewMessageResponse(c, http.StatusOK, "Wallet created successfully", wallet)
}

// GetAll handles GET /api/Wallets/GetAll
func (h *WalletHandler) GetAll(c echo.Context) error {
	userID := middleware.GetUserID(c)

	wallets, err := h.walletService.GetWallets(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get wallets")
		return NewInternalError(c, "Failed to get wallets")
	}

	return emptyAsNotFound(c, wallets, "No wallets found")
}

// GetByID handles GET /api/Wallets/GetById/{id}
func (h *WalletHandler) GetByID(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid wallet ID", nil)
	}

	wallet, err := h.walletService.GetWallet(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return NewNotFoundError(c, "Wallet not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("wallet_id", id).Msg("Failed to get wallet")
		return NewInternalError(c, "Failed to get wallet")
	}

	return c.JSON(http.StatusOK, wallet)
}

// Update handles PUT /api/Wallets/Update/{id}
func (h *WalletHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid wallet ID", nil)
	}

	var req WalletRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	wallet, err := h.walletService.UpdateWallet(userID, id, req.Name, domain.WalletType(req.Type))
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return NewNotFoundError(c, "Wallet not found")
		}
		if mapped := mapWalletValidationError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("wallet_id", id).Msg("Failed to update wallet")
		return NewInternalError(c, "Failed to update wallet")
	}

	log.Info().Str("user_id", userID.String()).Int32("wallet_id", wallet.ID).Msg("Wallet updated")

	return NewMessageResponse(c, http.StatusOK, "Wallet updated successfully", wallet)
}

// Delete handles DELETE /api/Wallets/Delete/{id}
func (h *WalletHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid wallet ID", nil)
	}

	if err := h.walletService.DeleteWallet(userID, id); err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return NewNotFoundError(c, "Wallet not found")
		}
		if errors.Is(err, domain.ErrWalletHasTransactions) {
			return NewConflictError(c, "Wallet has transactions and cannot be deleted")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("wallet_id", id).Msg("Failed to delete wallet")
		return NewInternalError(c, "Failed to delete wallet")
	}

	log.Info().Str("user_id", userID.String()).Int32("wallet_id", id).Msg("Wallet deleted")

	return NewMessageResponse(c, http.StatusOK, "Wallet deleted successfully", nil)
}

func mapWalletValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidWalletType):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: bank, cash, card"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "initialBalance", Message: "Initial balance must not be negative"},
		})
	}
	return nil
}
