package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
)

// WalletRepository implements domain.WalletRepository using PostgreSQL
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

const walletColumns = "id, user_id, name, type, balance, created_at, updated_at"

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	var walletType string
	var balance pgtype.Numeric
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&w.ID, &w.UserID, &w.Name, &walletType, &balance, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	w.Type = domain.WalletType(walletType)
	w.Balance = pgNumericToDecimal(balance)
	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time
	return &w, nil
}

// Create creates a new wallet with its starting balance
func (r *WalletRepository) Create(wallet *domain.Wallet) (*domain.Wallet, error) {
	ctx := context.Background()
	balance, err := decimalToPgNumeric(wallet.Balance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance: %w", err)
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO wallets (user_id, name, type, balance)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+walletColumns,
		wallet.UserID, wallet.Name, string(wallet.Type), balance)
	return scanWallet(row)
}

// GetByID retrieves a wallet by its ID for the owning user
func (r *WalletRepository) GetByID(userID uuid.UUID, id int32) (*domain.Wallet, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		"SELECT "+walletColumns+" FROM wallets WHERE user_id = $1 AND id = $2",
		userID, id)
	wallet, err := scanWallet(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}

// GetAllByUser retrieves all wallets for a user
func (r *WalletRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Wallet, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		"SELECT "+walletColumns+" FROM wallets WHERE user_id = $1 ORDER BY id",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []*domain.Wallet
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}
	return wallets, rows.Err()
}

// Update updates a wallet's name and type. The balance is never written here.
func (r *WalletRepository) Update(userID uuid.UUID, id int32, name string, walletType domain.WalletType) (*domain.Wallet, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`UPDATE wallets SET name = $3, type = $4, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+walletColumns,
		userID, id, name, string(walletType))
	wallet, err := scanWallet(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}

// Delete removes a wallet. The RESTRICT constraint on transactions keeps
// ledger history intact; a violation maps to ErrWalletHasTransactions.
func (r *WalletRepository) Delete(userID uuid.UUID, id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM wallets WHERE user_id = $1 AND id = $2", userID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrWalletHasTransactions
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}
