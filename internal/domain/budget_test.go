package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func expense(categoryID int32, amount string, on time.Time) *Transaction {
	return &Transaction{
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		Type:       TransactionTypeExpense,
		Date:       on,
	}
}

func income(categoryID int32, amount string, on time.Time) *Transaction {
	tx := expense(categoryID, amount, on)
	tx.Type = TransactionTypeIncome
	return tx
}

func testBudget(amount string) *Budget {
	return &Budget{
		UserID:    uuid.New(),
		Name:      "March spending",
		Amount:    decimal.RequireFromString(amount),
		StartDate: date(2025, time.March, 1),
		EndDate:   date(2025, time.March, 31),
	}
}

func TestBudgetSpend_SumsInWindowExpenses(t *testing.T) {
	budget := testBudget("400")

	transactions := []*Transaction{
		expense(1, "60", date(2025, time.March, 5)),
		expense(1, "40", date(2025, time.March, 20)),
		income(1, "500", date(2025, time.March, 15)),    // income ignored
		expense(1, "75", date(2025, time.April, 1)),     // after window
		expense(1, "75", date(2025, time.February, 28)), // before window
	}

	spent := budget.Spend(transactions)
	if !spent.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Expected spend 100, got %s", spent)
	}

	progress := budget.Progress(spent)
	if !progress.Equal(decimal.RequireFromString("25")) {
		t.Errorf("Expected progress 25, got %s", progress)
	}
}

func TestBudgetSpend_PoolsAllCategories(t *testing.T) {
	budget := testBudget("400")

	transactions := []*Transaction{
		expense(1, "100", date(2025, time.March, 5)),
		expense(2, "50", date(2025, time.March, 10)),
	}

	spent := budget.Spend(transactions)
	if !spent.Equal(decimal.RequireFromString("150")) {
		t.Errorf("Expected every in-window expense pooled for a spend of 150, got %s", spent)
	}
}

func TestBudgetSpend_WindowBoundariesInclusive(t *testing.T) {
	budget := testBudget("100")

	transactions := []*Transaction{
		expense(1, "10", budget.StartDate),
		expense(1, "20", budget.EndDate),
	}

	spent := budget.Spend(transactions)
	if !spent.Equal(decimal.RequireFromString("30")) {
		t.Errorf("Expected both boundary days counted, got %s", spent)
	}
}

func TestBudgetProgress_ZeroAmount(t *testing.T) {
	budget := testBudget("0")

	progress := budget.Progress(decimal.RequireFromString("50"))
	if !progress.IsZero() {
		t.Errorf("Expected progress 0 for zero-amount budget, got %s", progress)
	}
}

func TestBudgetProgress_ClampedAtHundred(t *testing.T) {
	budget := testBudget("100")

	progress := budget.Progress(decimal.RequireFromString("250"))
	if !progress.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Expected progress clamped to 100, got %s", progress)
	}
}

func TestBudgetProgress_NoSpend(t *testing.T) {
	budget := testBudget("100")

	progress := budget.Progress(decimal.Zero)
	if !progress.IsZero() {
		t.Errorf("Expected progress 0, got %s", progress)
	}
}

func TestBudgetRemaining_NeverNegative(t *testing.T) {
	budget := testBudget("100")

	remaining := budget.Remaining(decimal.RequireFromString("150"))
	if !remaining.IsZero() {
		t.Errorf("Expected remaining 0 when overspent, got %s", remaining)
	}

	remaining = budget.Remaining(decimal.RequireFromString("30"))
	if !remaining.Equal(decimal.RequireFromString("70")) {
		t.Errorf("Expected remaining 70, got %s", remaining)
	}
}
