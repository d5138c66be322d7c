package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/repository/storage"
)

const (
	MaxReceiptSize   = 5 * 1024 * 1024 // 5MB
	MinReceiptWidth  = 50
	MinReceiptHeight = 50
	DisplayWidth     = 1200
	JPEGQuality      = 85

	// PresignExpiry is how long a receipt download link stays valid
	PresignExpiry = 15 * time.Minute
)

var (
	ErrReceiptTooLarge            = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidReceiptFormat       = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrReceiptTooSmall            = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidReceiptData         = errors.New("invalid image data")
	ErrReceiptStorageNotConfigured = errors.New("receipt storage not configured")
	ErrNoReceipt                  = errors.New("transaction has no receipt")
)

// AllowedReceiptExtensions maps extensions to content types
var AllowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ReceiptService handles receipt image processing and storage. Uploaded
// images are normalized to JPEG, resized down when oversized and stored in
// a private bucket; downloads go through short-lived presigned URLs.
type ReceiptService struct {
	storage         storage.ReceiptRepository
	transactionRepo domain.TransactionRepository
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(storage storage.ReceiptRepository, transactionRepo domain.TransactionRepository) *ReceiptService {
	return &ReceiptService{
		storage:         storage,
		transactionRepo: transactionRepo,
	}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured)
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

func (s *ReceiptService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxReceiptSize {
		return nil, ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedReceiptExtensions[ext]; !ok {
		return nil, ErrInvalidReceiptFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidReceiptData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinReceiptWidth || bounds.Dy() < MinReceiptHeight {
		return nil, ErrReceiptTooSmall
	}

	return img, nil
}

// Attach processes and stores a receipt image for a transaction. A receipt
// already attached is replaced; its object is removed after the new one is
// stored and recorded.
func (s *ReceiptService) Attach(ctx context.Context, userID uuid.UUID, transactionID int32, data []byte, filename string) (*domain.Transaction, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}

	existing, err := s.transactionRepo.GetByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	if img.Bounds().Dx() > DisplayWidth {
		img = imaging.Resize(img, DisplayWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	objectPath := storage.GenerateObjectPath(userID, transactionID, "receipt", ".jpg")
	if _, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	updated, err := s.transactionRepo.SetReceiptPath(userID, transactionID, &objectPath)
	if err != nil {
		// Best effort cleanup of the orphaned object
		_ = s.storage.Delete(ctx, objectPath)
		return nil, err
	}

	if existing.ReceiptPath != nil {
		_ = s.storage.Delete(ctx, *existing.ReceiptPath)
	}

	return updated, nil
}

// GetURL returns a presigned URL for a transaction's stored receipt
func (s *ReceiptService) GetURL(ctx context.Context, userID uuid.UUID, transactionID int32) (string, error) {
	if !s.IsEnabled() {
		return "", ErrReceiptStorageNotConfigured
	}

	transaction, err := s.transactionRepo.GetByID(userID, transactionID)
	if err != nil {
		return "", err
	}
	if transaction.ReceiptPath == nil {
		return "", ErrNoReceipt
	}

	return s.storage.GeneratePresignedURL(ctx, *transaction.ReceiptPath, PresignExpiry)
}

// Detach removes a transaction's receipt from storage and clears the path
func (s *ReceiptService) Detach(ctx context.Context, userID uuid.UUID, transactionID int32) (*domain.Transaction, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}

	transaction, err := s.transactionRepo.GetByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.ReceiptPath == nil {
		return nil, ErrNoReceipt
	}

	objectPath := *transaction.ReceiptPath
	updated, err := s.transactionRepo.SetReceiptPath(userID, transactionID, nil)
	if err != nil {
		return nil, err
	}

	_ = s.storage.Delete(ctx, objectPath)
	return updated, nil
}

// GetContentType returns the content type for a file extension
func GetContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := AllowedReceiptExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
