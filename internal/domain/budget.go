package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a spending cap over a date window. All of the user's expenses
// in the window count against it regardless of category. Spend and progress
// are always derived from the ledger; the budget row itself stores no
// accumulator.
type Budget struct {
	ID        int32           `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BudgetProgress is a budget with its derived spend figures
type BudgetProgress struct {
	Budget          *Budget         `json:"budget"`
	Spent           decimal.Decimal `json:"spent"`
	Remaining       decimal.Decimal `json:"remaining"`
	ProgressPercent decimal.Decimal `json:"progressPercent"`
}

// BudgetRepository defines the interface for budget persistence operations
type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(userID uuid.UUID, id int32) (*Budget, error)
	GetAllByUser(userID uuid.UUID) ([]*Budget, error)
	Update(userID uuid.UUID, id int32, budget *Budget) (*Budget, error)
	Delete(userID uuid.UUID, id int32) error
	// SumExpensesInWindow totals the user's posted expense amounts within
	// [from, to] inclusive, across all categories.
	SumExpensesInWindow(userID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}

// Spend totals the expense transactions that count against the budget:
// type expense, dated within the budget window inclusive. Categories do not
// scope budgets; every expense in the window counts.
func (b *Budget) Spend(transactions []*Transaction) decimal.Decimal {
	return SumByTypeInRange(transactions, TransactionTypeExpense, b.StartDate, b.EndDate)
}

var oneHundred = decimal.NewFromInt(100)

// Progress converts a spend figure into a percentage of the budget amount,
// clamped to [0, 100]. A zero-amount budget reports zero progress rather
// than dividing by zero.
func (b *Budget) Progress(spent decimal.Decimal) decimal.Decimal {
	if b.Amount.IsZero() {
		return decimal.Zero
	}
	pct := spent.Mul(oneHundred).Div(b.Amount)
	if pct.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if pct.GreaterThan(oneHundred) {
		return oneHundred
	}
	return pct
}

// Remaining is the budget amount not yet consumed, never negative
func (b *Budget) Remaining(spent decimal.Decimal) decimal.Decimal {
	rem := b.Amount.Sub(spent)
	if rem.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return rem
}
