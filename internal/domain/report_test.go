package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestComputeReportTotals(t *testing.T) {
	from := date(2025, time.January, 1)
	to := date(2025, time.January, 31)

	transactions := []*Transaction{
		income(1, "1000", date(2025, time.January, 5)),
		income(1, "200", date(2025, time.January, 31)),
		expense(1, "300", date(2025, time.January, 10)),
		expense(2, "50", date(2025, time.January, 1)),
		income(1, "999", date(2025, time.February, 1)), // outside window
		expense(1, "999", date(2024, time.December, 31)),
	}

	totals := ComputeReportTotals(transactions, from, to)

	if !totals.TotalIncome.Equal(decimal.RequireFromString("1200")) {
		t.Errorf("Expected total income 1200, got %s", totals.TotalIncome)
	}
	if !totals.TotalExpense.Equal(decimal.RequireFromString("350")) {
		t.Errorf("Expected total expense 350, got %s", totals.TotalExpense)
	}
	if !totals.NetBalance.Equal(decimal.RequireFromString("850")) {
		t.Errorf("Expected net balance 850, got %s", totals.NetBalance)
	}
}

func TestComputeReportTotals_Empty(t *testing.T) {
	totals := ComputeReportTotals(nil, date(2025, time.January, 1), date(2025, time.January, 31))

	if !totals.TotalIncome.IsZero() || !totals.TotalExpense.IsZero() || !totals.NetBalance.IsZero() {
		t.Errorf("Expected all-zero totals for no transactions, got %+v", totals)
	}
}

func TestTransactionInDateRange_IgnoresTimeOfDay(t *testing.T) {
	tx := &Transaction{
		Date: time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC),
		Type: TransactionTypeExpense,
	}

	if !tx.InDateRange(date(2025, time.March, 1), date(2025, time.March, 31)) {
		t.Error("Expected transaction on the last day of the window to be in range")
	}
}
