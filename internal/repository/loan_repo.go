package repository

import (
	"context"
	"errors"
	"fmt"

	"creditsea/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LoanRepository defines operations for loan application data
type LoanRepository interface {
	Create(ctx context.Context, loan *model.LoanApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LoanApplication, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.LoanApplication, error)
	FindAll(ctx context.Context) ([]model.LoanApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.LoanApplication, error)
	Stats(ctx context.Context) (*model.LoanStats, error)
}

type loanRepository struct {
	db DBTX
}

// NewLoanRepository creates a new LoanRepository
func NewLoanRepository(db DBTX) LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, user_id, full_name, loan_amount, loan_tenure, employment_status, reason_for_loan,
            employment_address, has_read_information, agree_to_disclosure, status, created_at, updated_at`

func scanLoan(row pgx.Row) (*model.LoanApplication, error) {
	l := &model.LoanApplication{}
	err := row.Scan(
		&l.ID, &l.UserID, &l.FullName, &l.LoanAmount, &l.LoanTenure, &l.EmploymentStatus, &l.ReasonForLoan,
		&l.EmploymentAddress, &l.HasReadInformation, &l.AgreeToDisclosure, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func collectLoans(rows pgx.Rows) ([]model.LoanApplication, error) {
	defer rows.Close()

	loans := []model.LoanApplication{}
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return loans, nil
}

// Create inserts a new loan application into the database and reads back
// the stored amount, which the column rounds to cents.
func (r *loanRepository) Create(ctx context.Context, l *model.LoanApplication) error {
	sql := `INSERT INTO loan_applications (id, user_id, full_name, loan_amount, loan_tenure, employment_status,
                reason_for_loan, employment_address, has_read_information, agree_to_disclosure, status, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
            RETURNING loan_amount, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		l.ID, l.UserID, l.FullName, l.LoanAmount, l.LoanTenure, l.EmploymentStatus,
		l.ReasonForLoan, l.EmploymentAddress, l.HasReadInformation, l.AgreeToDisclosure, l.Status, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.LoanAmount, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan application: %w", err)
	}
	return nil
}

// FindByID retrieves a loan application by its ID
func (r *loanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LoanApplication, error) {
	sql := `SELECT ` + loanColumns + ` FROM loan_applications WHERE id = $1`
	l, err := scanLoan(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find loan application by ID: %w", err)
	}
	return l, nil
}

// FindByUser retrieves the loan applications owned by a user, newest first
func (r *loanRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.LoanApplication, error) {
	sql := `SELECT ` + loanColumns + ` FROM loan_applications WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan applications by user: %w", err)
	}
	return collectLoans(rows)
}

// FindAll retrieves every loan application, newest first
func (r *loanRepository) FindAll(ctx context.Context) ([]model.LoanApplication, error) {
	sql := `SELECT ` + loanColumns + ` FROM loan_applications ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query all loan applications: %w", err)
	}
	return collectLoans(rows)
}

// UpdateStatus overwrites status in a single statement and returns the updated
// record, or nil if no loan has that ID
func (r *loanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.LoanApplication, error) {
	sql := `UPDATE loan_applications SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + loanColumns
	l, err := scanLoan(r.db.QueryRow(ctx, sql, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update loan status: %w", err)
	}
	return l, nil
}

// Stats aggregates loan counts per status and requested/approved totals
func (r *loanRepository) Stats(ctx context.Context) (*model.LoanStats, error) {
	stats := &model.LoanStats{ByStatus: make(map[string]int64)}
	for _, s := range model.LoanStatuses {
		stats.ByStatus[s] = 0
	}

	sql := `SELECT status, COUNT(*), COALESCE(SUM(loan_amount), 0)
            FROM loan_applications GROUP BY status`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		var sum float64
		if err := rows.Scan(&status, &count, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan loan stats: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
		stats.TotalRequested += sum
		if status == model.LoanStatusApproved {
			stats.TotalApproved = sum
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan stats: %w", err)
	}
	return stats, nil
}
