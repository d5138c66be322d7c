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

// TransactionRepository implements domain.TransactionRepository using
// PostgreSQL. Posting, updating and deleting run inside a database
// transaction so the ledger row and the wallet balance always move together.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = "id, user_id, wallet_id, category_id, amount, type, date, description, receipt_path, created_at, updated_at"

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var txType string
	var amount pgtype.Numeric
	var date pgtype.Date
	var description, receiptPath pgtype.Text
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&t.ID, &t.UserID, &t.WalletID, &t.CategoryID, &amount, &txType, &date, &description, &receiptPath, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.Amount = pgNumericToDecimal(amount)
	t.Type = domain.TransactionType(txType)
	t.Date = date.Time
	t.Description = pgTextToStringPtr(description)
	t.ReceiptPath = pgTextToStringPtr(receiptPath)
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}

// balanceEffect is the signed delta a transaction applies to its wallet
func balanceEffect(txType domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txType == domain.TransactionTypeExpense {
		return amount.Neg()
	}
	return amount
}

// applyWalletDelta locks the wallet row, verifies the resulting balance is
// not negative and writes it. The lock serializes concurrent postings
// against the same wallet.
func applyWalletDelta(ctx context.Context, tx pgx.Tx, userID uuid.UUID, walletID int32, delta decimal.Decimal) error {
	var balance pgtype.Numeric
	err := tx.QueryRow(ctx,
		"SELECT balance FROM wallets WHERE user_id = $1 AND id = $2 FOR UPDATE",
		userID, walletID).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrWalletNotFound
		}
		return err
	}

	newBalance := pgNumericToDecimal(balance).Add(delta)
	if newBalance.LessThan(decimal.Zero) {
		return domain.ErrInsufficientFunds
	}

	pgBalance, err := decimalToPgNumeric(newBalance)
	if err != nil {
		return fmt.Errorf("invalid balance: %w", err)
	}
	_, err = tx.Exec(ctx,
		"UPDATE wallets SET balance = $3, updated_at = now() WHERE user_id = $1 AND id = $2",
		userID, walletID, pgBalance)
	return err
}

func categoryExists(ctx context.Context, tx pgx.Tx, userID uuid.UUID, categoryID int32) error {
	var one int
	err := tx.QueryRow(ctx,
		"SELECT 1 FROM categories WHERE user_id = $1 AND id = $2",
		userID, categoryID).Scan(&one)
	if err == pgx.ErrNoRows {
		return domain.ErrCategoryNotFound
	}
	return err
}

// Post inserts a transaction and applies its effect to the wallet balance
// atomically. An expense that exceeds the wallet balance fails with
// ErrInsufficientFunds and leaves both the ledger and the balance untouched.
func (r *TransactionRepository) Post(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := categoryExists(ctx, tx, transaction.UserID, transaction.CategoryID); err != nil {
		return nil, err
	}
	if err := applyWalletDelta(ctx, tx, transaction.UserID, transaction.WalletID,
		balanceEffect(transaction.Type, transaction.Amount)); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, wallet_id, category_id, amount, type, date, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+transactionColumns,
		transaction.UserID, transaction.WalletID, transaction.CategoryID,
		amount, string(transaction.Type),
		pgtype.Date{Time: transaction.Date, Valid: true},
		stringPtrToPgText(transaction.Description))
	created, err := scanTransaction(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a transaction by its ID for the owning user
func (r *TransactionRepository) GetByID(userID uuid.UUID, id int32) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = $1 AND id = $2",
		userID, id)
	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

func (r *TransactionRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// GetAllByUser retrieves all transactions for a user, newest first
func (r *TransactionRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Transaction, error) {
	return r.queryMany(context.Background(),
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = $1 ORDER BY date DESC, id DESC",
		userID)
}

// GetByWallet retrieves all transactions posted against one wallet
func (r *TransactionRepository) GetByWallet(userID uuid.UUID, walletID int32) ([]*domain.Transaction, error) {
	return r.queryMany(context.Background(),
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = $1 AND wallet_id = $2 ORDER BY date DESC, id DESC",
		userID, walletID)
}

// GetByDateRange retrieves all transactions dated within [from, to] inclusive
func (r *TransactionRepository) GetByDateRange(userID uuid.UUID, from, to time.Time) ([]*domain.Transaction, error) {
	return r.queryMany(context.Background(),
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date, id",
		userID,
		pgtype.Date{Time: from, Valid: true},
		pgtype.Date{Time: to, Valid: true})
}

// Update replaces a transaction's details. The old balance effect is
// reverted and the new one applied in the same database transaction, so a
// failure partway leaves every balance as it was.
func (r *TransactionRepository) Update(userID uuid.UUID, id int32, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = $1 AND id = $2 FOR UPDATE",
		userID, id)
	existing, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	if err := categoryExists(ctx, tx, userID, data.CategoryID); err != nil {
		return nil, err
	}

	// Revert the old effect, then apply the new one. When the wallet
	// changes, each side touches its own wallet row.
	if err := applyWalletDelta(ctx, tx, userID, existing.WalletID,
		balanceEffect(existing.Type, existing.Amount).Neg()); err != nil {
		return nil, err
	}
	if err := applyWalletDelta(ctx, tx, userID, data.WalletID,
		balanceEffect(data.Type, data.Amount)); err != nil {
		return nil, err
	}

	row = tx.QueryRow(ctx,
		`UPDATE transactions
		 SET wallet_id = $3, category_id = $4, amount = $5, type = $6, date = $7, description = $8, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+transactionColumns,
		userID, id, data.WalletID, data.CategoryID, amount, string(data.Type),
		pgtype.Date{Time: data.Date, Valid: true},
		stringPtrToPgText(data.Description))
	updated, err := scanTransaction(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a transaction and reverts its effect on the wallet balance
func (r *TransactionRepository) Delete(userID uuid.UUID, id int32) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = $1 AND id = $2 FOR UPDATE",
		userID, id)
	existing, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrTransactionNotFound
		}
		return err
	}

	if err := applyWalletDelta(ctx, tx, userID, existing.WalletID,
		balanceEffect(existing.Type, existing.Amount).Neg()); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		"DELETE FROM transactions WHERE user_id = $1 AND id = $2", userID, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SumByTypeAndDateRange sums transactions by type within a date range
func (r *TransactionRepository) SumByTypeAndDateRange(userID uuid.UUID, from, to time.Time, txType domain.TransactionType) (decimal.Decimal, error) {
	ctx := context.Background()
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM transactions
		 WHERE user_id = $1 AND type = $2 AND date >= $3 AND date <= $4`,
		userID, string(txType),
		pgtype.Date{Time: from, Valid: true},
		pgtype.Date{Time: to, Valid: true}).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

// SetReceiptPath records or clears the stored receipt object key
func (r *TransactionRepository) SetReceiptPath(userID uuid.UUID, id int32, receiptPath *string) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`UPDATE transactions SET receipt_path = $3, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+transactionColumns,
		userID, id, stringPtrToPgText(receiptPath))
	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// CountByCategory counts transactions referencing a category
func (r *TransactionRepository) CountByCategory(userID uuid.UUID, categoryID int32) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND category_id = $2",
		userID, categoryID).Scan(&count)
	return count, err
}
