package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pacifichr/payroll-backend-go/internal/domain/payrollbatch"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollBatchRepository struct {
	db *database.DB
}

func NewPayrollBatchRepository(db *database.DB) payrollbatch.Repository {
	return &payrollBatchRepository{db: db}
}

const batchColumns = `
	b.payroll_id, b.employer_id, b.date_from, b.date_to,
	b.year, b.month_no, b.week_no, b.period_type, b.status,
	b.processed_employees, b.total_amount,
	(SELECT COUNT(*) FROM payslips p WHERE p.payroll_id = b.payroll_id) AS total_employees,
	b.created_at, b.updated_at`

// Create inserts the batch. The overlap rule is enforced by the
// ex_payroll_batch_window exclusion constraint on
// (employer_id, daterange(date_from, date_to, '[]')), so the check and the
// insert are one atomic statement: two concurrent creates for overlapping
// windows cannot both succeed.
func (r *payrollBatchRepository) Create(ctx context.Context, b payrollbatch.Batch) (payrollbatch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_batches AS b (
			payroll_id, employer_id, date_from, date_to,
			year, month_no, week_no, period_type, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING` + batchColumns

	row := q.QueryRow(ctx, query,
		b.PayrollID, b.EmployerID, b.DateFrom, b.DateTo,
		b.Year, b.MonthNo, b.WeekNo, b.PeriodType, payrollbatch.StatusPending,
	)

	created, err := scanBatch(row)
	if err != nil {
		if strings.Contains(err.Error(), "ex_payroll_batch_window") {
			return payrollbatch.Batch{}, payrollbatch.ErrBatchPeriodOverlap
		}
		return payrollbatch.Batch{}, fmt.Errorf("failed to create payroll batch: %w", err)
	}

	return created, nil
}

func (r *payrollBatchRepository) GetByID(ctx context.Context, payrollID, employerID string) (payrollbatch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + batchColumns + `
		FROM payroll_batches b
		WHERE b.payroll_id = $1 AND b.employer_id = $2`

	b, err := scanBatch(q.QueryRow(ctx, query, payrollID, employerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollbatch.Batch{}, payrollbatch.ErrBatchNotFound
		}
		return payrollbatch.Batch{}, fmt.Errorf("failed to get payroll batch: %w", err)
	}

	return b, nil
}

func (r *payrollBatchRepository) ListByEmployer(ctx context.Context, employerID string, year int) ([]payrollbatch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + batchColumns + `
		FROM payroll_batches b
		WHERE b.employer_id = $1 AND ($2 = 0 OR b.year = $2)
		ORDER BY b.date_from DESC`

	rows, err := q.Query(ctx, query, employerID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll batches: %w", err)
	}
	defer rows.Close()

	var result []payrollbatch.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll batch: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payroll batches: %w", err)
	}

	return result, nil
}

// GetByIDForUpdate locks the batch row for the rest of the transaction.
// Call it with a context from WithTx; on a bare pool context the lock is
// released as soon as the statement finishes and protects nothing.
func (r *payrollBatchRepository) GetByIDForUpdate(ctx context.Context, payrollID, employerID string) (payrollbatch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + batchColumns + `
		FROM payroll_batches b
		WHERE b.payroll_id = $1 AND b.employer_id = $2
		FOR UPDATE OF b`

	b, err := scanBatch(q.QueryRow(ctx, query, payrollID, employerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollbatch.Batch{}, payrollbatch.ErrBatchNotFound
		}
		return payrollbatch.Batch{}, fmt.Errorf("failed to lock payroll batch: %w", err)
	}

	return b, nil
}

// UpdateApproval writes the processed set, total and status computed by the
// caller. Meant to follow GetByIDForUpdate in the same transaction.
func (r *payrollBatchRepository) UpdateApproval(ctx context.Context, payrollID, employerID string, processed []string, totalAmount decimal.Decimal, status payrollbatch.Status) (payrollbatch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	row := q.QueryRow(ctx, `
		UPDATE payroll_batches AS b
		SET processed_employees = $3, total_amount = $4, status = $5, updated_at = NOW()
		WHERE payroll_id = $1 AND employer_id = $2
		RETURNING`+batchColumns,
		payrollID, employerID, processed, totalAmount, status,
	)

	b, err := scanBatch(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollbatch.Batch{}, payrollbatch.ErrBatchNotFound
		}
		return payrollbatch.Batch{}, fmt.Errorf("failed to update payroll batch: %w", err)
	}

	return b, nil
}

// Delete hard-deletes the batch row. Payslips generated under it are left
// in place.
func (r *payrollBatchRepository) Delete(ctx context.Context, payrollID, employerID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM payroll_batches WHERE payroll_id = $1 AND employer_id = $2`,
		payrollID, employerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete payroll batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payrollbatch.ErrBatchNotFound
	}

	return nil
}

func scanBatch(row pgx.Row) (payrollbatch.Batch, error) {
	var b payrollbatch.Batch
	err := row.Scan(
		&b.PayrollID, &b.EmployerID, &b.DateFrom, &b.DateTo,
		&b.Year, &b.MonthNo, &b.WeekNo, &b.PeriodType, &b.Status,
		&b.ProcessedEmployees, &b.TotalAmount, &b.TotalEmployees,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return payrollbatch.Batch{}, err
	}
	return b, nil
}
