package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/middleware"
	"github.com/smartbudget/smartbudget-backend/internal/service"
)

// ReceiptHandler handles receipt image HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Upload handles POST /api/Transactions/{id}/Receipt
// Expects a multipart form with a "file" field.
func (h *ReceiptHandler) Upload(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "Missing file", []ValidationError{
			{Field: "file", Message: "A receipt image file is required"},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read uploaded file")
	}

	transaction, err := h.receiptService.Attach(c.Request().Context(), userID, id, data, fileHeader.Filename)
	if err != nil {
		if mapped := mapReceiptError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("transaction_id", id).Msg("Failed to attach receipt")
		return NewInternalError(c, "Failed to attach receipt")
	}

	log.Info().Str("user_id", userID.String()).Int32("transaction_id", id).Msg("Receipt attached")

	return NewMessageResponse(c, http.StatusOK, "Receipt uploaded successfully", transaction)
}

// GetURL handles GET /api/Transactions/{id}/Receipt
// Returns a short-lived presigned URL for the stored receipt.
func (h *ReceiptHandler) GetURL(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	url, err := h.receiptService.GetURL(c.Request().Context(), userID, id)
	if err != nil {
		if mapped := mapReceiptError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("transaction_id", id).Msg("Failed to get receipt URL")
		return NewInternalError(c, "Failed to get receipt URL")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// Delete handles DELETE /api/Transactions/{id}/Receipt
func (h *ReceiptHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.receiptService.Detach(c.Request().Context(), userID, id)
	if err != nil {
		if mapped := mapReceiptError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("transaction_id", id).Msg("Failed to delete receipt")
		return NewInternalError(c, "Failed to delete receipt")
	}

	log.Info().Str("user_id", userID.String()).Int32("transaction_id", id).Msg("Receipt deleted")

	return NewMessageResponse(c, http.StatusOK, "Receipt deleted successfully", transaction)
}

func mapReceiptError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NewNotFoundError(c, "Transaction not found")
	case errors.Is(err, service.ErrNoReceipt):
		return NewNotFoundError(c, "Transaction has no receipt")
	case errors.Is(err, service.ErrReceiptTooLarge):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidReceiptFormat):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, service.ErrReceiptTooSmall):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidReceiptData):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, service.ErrReceiptStorageNotConfigured):
		return NewInternalError(c, "Receipt storage is not configured")
	}
	return nil
}
