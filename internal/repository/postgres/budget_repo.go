package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = "id, user_id, name, amount, start_date, end_date, created_at, updated_at"

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	var amount pgtype.Numeric
	var startDate, endDate pgtype.Date
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&b.ID, &b.UserID, &b.Name, &amount, &startDate, &endDate, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	b.Amount = pgNumericToDecimal(amount)
	b.StartDate = startDate.Time
	b.EndDate = endDate.Time
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

// Create creates a new budget
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO budgets (user_id, name, amount, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+budgetColumns,
		budget.UserID, budget.Name, amount,
		pgtype.Date{Time: budget.StartDate, Valid: true},
		pgtype.Date{Time: budget.EndDate, Valid: true})
	return scanBudget(row)
}

// GetByID retrieves a budget by its ID for the owning user
func (r *BudgetRepository) GetByID(userID uuid.UUID, id int32) (*domain.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE user_id = $1 AND id = $2",
		userID, id)
	budget, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// GetAllByUser retrieves all budgets for a user
func (r *BudgetRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Budget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE user_id = $1 ORDER BY id",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// Update replaces a budget's details
func (r *BudgetRepository) Update(userID uuid.UUID, id int32, budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE budgets
		 SET name = $3, amount = $4, start_date = $5, end_date = $6, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+budgetColumns,
		userID, id, budget.Name, amount,
		pgtype.Date{Time: budget.StartDate, Valid: true},
		pgtype.Date{Time: budget.EndDate, Valid: true})
	updated, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a budget
func (r *BudgetRepository) Delete(userID uuid.UUID, id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM budgets WHERE user_id = $1 AND id = $2", userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

// SumExpensesInWindow totals the user's posted expense amounts within
// [from, to] inclusive, across all categories.
func (r *BudgetRepository) SumExpensesInWindow(userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	ctx := context.Background()
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM transactions
		 WHERE user_id = $1 AND type = 'expense'
		   AND date >= $2 AND date <= $3`,
		userID,
		pgtype.Date{Time: from, Valid: true},
		pgtype.Date{Time: to, Valid: true}).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}
