package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrReportNotFound      = errors.New("report not found")

	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrWalletHasTransactions = errors.New("wallet has transactions")
	ErrCategoryInUse         = errors.New("category is referenced by transactions")

	ErrNameRequired           = errors.New("name is required")
	ErrNameTooLong            = errors.New("name exceeds maximum length")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidWalletType      = errors.New("invalid wallet type")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidDateRange       = errors.New("start date must not be after end date")
	ErrDescriptionTooLong     = errors.New("description exceeds maximum length")
	ErrCategoryAlreadyExists  = errors.New("category already exists")

	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// Validation constants
const (
	MaxWalletNameLength   = 255
	MaxCategoryNameLength = 100
	MaxBudgetNameLength   = 255
	MaxDescriptionLength  = 1000
	MinPasswordLength     = 8
)
