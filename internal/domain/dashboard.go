package domain

import "github.com/shopspring/decimal"

// DashboardSummary is the current-month overview returned by the dashboard
// endpoint: per-wallet balances, month-to-date income and expense totals,
// and the progress of every budget.
type DashboardSummary struct {
	Wallets      []*WalletBalance  `json:"wallets"`
	TotalBalance decimal.Decimal   `json:"totalBalance"`
	MonthIncome  decimal.Decimal   `json:"monthIncome"`
	MonthExpense decimal.Decimal   `json:"monthExpense"`
	MonthNet     decimal.Decimal   `json:"monthNet"`
	Budgets      []*BudgetProgress `json:"budgets"`
}
