package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletType string

const (
	WalletTypeBank WalletType = "bank"
	WalletTypeCash WalletType = "cash"
	WalletTypeCard WalletType = "card"
)

// ValidWalletType reports whether t is one of the supported wallet types
func ValidWalletType(t WalletType) bool {
	switch t {
	case WalletTypeBank, WalletTypeCash, WalletTypeCard:
		return true
	}
	return false
}

// Wallet is a user-owned account with a running balance. The balance is
// mutated only through transaction posting (and its inverses); no other
// code path writes it.
type Wallet struct {
	ID        int32           `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Name      string          `json:"name"`
	Type      WalletType      `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// WalletBalance pairs a wallet with its balance for dashboard listings
type WalletBalance struct {
	WalletID int32           `json:"walletId"`
	Name     string          `json:"name"`
	Type     WalletType      `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
}

// WalletRepository defines the interface for wallet persistence operations.
// All lookups are scoped by the owning user.
type WalletRepository interface {
	Create(wallet *Wallet) (*Wallet, error)
	GetByID(userID uuid.UUID, id int32) (*Wallet, error)
	GetAllByUser(userID uuid.UUID) ([]*Wallet, error)
	Update(userID uuid.UUID, id int32, name string, walletType WalletType) (*Wallet, error)
	// Delete removes a wallet. It returns ErrWalletHasTransactions when
	// transactions still reference it; ledger history is never cascaded.
	Delete(userID uuid.UUID, id int32) error
}
