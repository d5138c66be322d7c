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

// ReportRepository implements domain.ReportRepository using PostgreSQL
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

const reportColumns = "id, user_id, description, from_date, to_date, total_income, total_expense, net_balance, created_at, updated_at"

func scanReport(row pgx.Row) (*domain.Report, error) {
	var rep domain.Report
	var fromDate, toDate pgtype.Date
	var totalIncome, totalExpense, netBalance pgtype.Numeric
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&rep.ID, &rep.UserID, &rep.Description, &fromDate, &toDate, &totalIncome, &totalExpense, &netBalance, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rep.FromDate = fromDate.Time
	rep.ToDate = toDate.Time
	rep.TotalIncome = pgNumericToDecimal(totalIncome)
	rep.TotalExpense = pgNumericToDecimal(totalExpense)
	rep.NetBalance = pgNumericToDecimal(netBalance)
	rep.CreatedAt = createdAt.Time
	rep.UpdatedAt = updatedAt.Time
	return &rep, nil
}

func reportNumerics(report *domain.Report) (income, expense, net pgtype.Numeric, err error) {
	if income, err = decimalToPgNumeric(report.TotalIncome); err != nil {
		err = fmt.Errorf("invalid total income: %w", err)
		return
	}
	if expense, err = decimalToPgNumeric(report.TotalExpense); err != nil {
		err = fmt.Errorf("invalid total expense: %w", err)
		return
	}
	if net, err = decimalToPgNumeric(report.NetBalance); err != nil {
		err = fmt.Errorf("invalid net balance: %w", err)
	}
	return
}

// Create stores a report with its computed totals
func (r *ReportRepository) Create(report *domain.Report) (*domain.Report, error) {
	ctx := context.Background()
	income, expense, net, err := reportNumerics(report)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO reports (user_id, description, from_date, to_date, total_income, total_expense, net_balance)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+reportColumns,
		report.UserID, report.Description,
		pgtype.Date{Time: report.FromDate, Valid: true},
		pgtype.Date{Time: report.ToDate, Valid: true},
		income, expense, net)
	return scanReport(row)
}

// GetByID retrieves a report by its ID for the owning user
func (r *ReportRepository) GetByID(userID uuid.UUID, id int32) (*domain.Report, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE user_id = $1 AND id = $2",
		userID, id)
	report, err := scanReport(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// GetAllByUser retrieves all reports for a user, newest first
func (r *ReportRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Report, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE user_id = $1 ORDER BY id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// Update replaces a report's details and recomputed totals
func (r *ReportRepository) Update(userID uuid.UUID, id int32, report *domain.Report) (*domain.Report, error) {
	ctx := context.Background()
	income, expense, net, err := reportNumerics(report)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE reports
		 SET description = $3, from_date = $4, to_date = $5, total_income = $6, total_expense = $7, net_balance = $8, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+reportColumns,
		userID, id, report.Description,
		pgtype.Date{Time: report.FromDate, Valid: true},
		pgtype.Date{Time: report.ToDate, Valid: true},
		income, expense, net)
	updated, err := scanReport(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a report
func (r *ReportRepository) Delete(userID uuid.UUID, id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM reports WHERE user_id = $1 AND id = $2", userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}
