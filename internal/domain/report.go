package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Report is a stored summary of a user's ledger over a date window. Totals
// are computed on the server when the report is created or updated and kept
// as a snapshot; later postings do not rewrite existing reports.
type Report struct {
	ID           int32           `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	Description  string          `json:"description"`
	FromDate     time.Time       `json:"from"`
	ToDate       time.Time       `json:"to"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetBalance   decimal.Decimal `json:"netBalance"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ReportTotals carries the three aggregate figures of a report window
type ReportTotals struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetBalance   decimal.Decimal `json:"netBalance"`
}

// ReportRepository defines the interface for report persistence operations
type ReportRepository interface {
	Create(report *Report) (*Report, error)
	GetByID(userID uuid.UUID, id int32) (*Report, error)
	GetAllByUser(userID uuid.UUID) ([]*Report, error)
	Update(userID uuid.UUID, id int32, report *Report) (*Report, error)
	Delete(userID uuid.UUID, id int32) error
}

// ComputeReportTotals aggregates the user's transactions that fall within
// [from, to] inclusive into income, expense and net figures. Only the
// transactions passed in are considered; callers scope them to the owner.
func ComputeReportTotals(transactions []*Transaction, from, to time.Time) ReportTotals {
	income := SumByTypeInRange(transactions, TransactionTypeIncome, from, to)
	expense := SumByTypeInRange(transactions, TransactionTypeExpense, from, to)
	return ReportTotals{
		TotalIncome:  income,
		TotalExpense: expense,
		NetBalance:   income.Sub(expense),
	}
}
