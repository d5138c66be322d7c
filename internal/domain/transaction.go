package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// ValidTransactionType reports whether t is income or expense
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single dated money movement against one wallet and one
// category. Posting a transaction is the only operation that moves a wallet
// balance: income adds the amount, expense subtracts it when covered.
type Transaction struct {
	ID          int32           `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	WalletID    int32           `json:"walletId"`
	CategoryID  int32           `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
	Description *string         `json:"description,omitempty"`
	ReceiptPath *string         `json:"receiptPath,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// UpdateTransactionData holds the replacement values for an existing transaction
type UpdateTransactionData struct {
	WalletID    int32
	CategoryID  int32
	Amount      decimal.Decimal
	Type        TransactionType
	Date        time.Time
	Description *string
}

// TransactionRepository defines the interface for transaction persistence.
// Post, Update and Delete apply the wallet-balance effect and the row write
// in a single database transaction; a posting that would drive a balance
// negative fails with ErrInsufficientFunds and writes nothing.
type TransactionRepository interface {
	Post(transaction *Transaction) (*Transaction, error)
	GetByID(userID uuid.UUID, id int32) (*Transaction, error)
	GetAllByUser(userID uuid.UUID) ([]*Transaction, error)
	GetByWallet(userID uuid.UUID, walletID int32) ([]*Transaction, error)
	GetByDateRange(userID uuid.UUID, from, to time.Time) ([]*Transaction, error)
	Update(userID uuid.UUID, id int32, data *UpdateTransactionData) (*Transaction, error)
	Delete(userID uuid.UUID, id int32) error
	SumByTypeAndDateRange(userID uuid.UUID, from, to time.Time, txType TransactionType) (decimal.Decimal, error)
	SetReceiptPath(userID uuid.UUID, id int32, receiptPath *string) (*Transaction, error)
	CountByCategory(userID uuid.UUID, categoryID int32) (int64, error)
}

// InDateRange reports whether the transaction's date falls within [from, to]
// inclusive. Only the calendar date is compared; time-of-day components are
// ignored.
func (t *Transaction) InDateRange(from, to time.Time) bool {
	d := dateOnly(t.Date)
	return !d.Before(dateOnly(from)) && !d.After(dateOnly(to))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SumByTypeInRange reduces transactions to the total amount of the given
// type within [from, to]. This is the one shared aggregation used by budget
// progress, report totals and the dashboard; screens never re-derive it.
func SumByTypeInRange(transactions []*Transaction, txType TransactionType, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Type != txType {
			continue
		}
		if !tx.InDateRange(from, to) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}
