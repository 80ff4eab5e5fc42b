package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.Repository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	id, employee_id, employee_name, employer_id, payroll_id,
	period_start, period_end, total_days, expected_base_hours,
	total_work_hours, overtime_hours,
	pay_type, hourly_rate, overtime_rate, period_salary,
	allowance_lines, deduction_lines,
	base_salary, allowances, overtime_pay,
	paye, acc, npf, other_deductions, total_deductions,
	employer_acc, employer_npf, employer_total,
	net_payable, week_no, month_no, year, tax_version, created_at`

func (r *payslipRepository) Create(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	allowanceLines, err := json.Marshal(p.Allowances)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to encode allowance lines: %w", err)
	}
	deductionLines, err := json.Marshal(p.Deductions)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to encode deduction lines: %w", err)
	}

	query := `
		INSERT INTO payslips (
			employee_id, employee_name, employer_id, payroll_id,
			period_start, period_end, total_days, expected_base_hours,
			total_work_hours, overtime_hours,
			pay_type, hourly_rate, overtime_rate, period_salary,
			allowance_lines, deduction_lines,
			base_salary, allowances, overtime_pay,
			paye, acc, npf, other_deductions, total_deductions,
			employer_acc, employer_npf, employer_total,
			net_payable, week_no, month_no, year, tax_version
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32
		)
		RETURNING` + payslipColumns

	row := q.QueryRow(ctx, query,
		p.EmployeeID, p.EmployeeName, p.EmployerID, p.PayrollID,
		p.Period.StartDate, p.Period.EndDate, p.Period.TotalDays, p.Period.ExpectedBaseHours,
		p.Work.TotalWorkHours, p.Work.OvertimeHours,
		p.Rate.PayType, p.Rate.HourlyRate, p.Rate.OvertimeRate, p.Rate.PeriodSalary,
		allowanceLines, deductionLines,
		p.Breakdown.BaseSalary, p.Breakdown.Allowances, p.Breakdown.OvertimePay,
		p.Breakdown.Deductions.Paye, p.Breakdown.Deductions.ACC, p.Breakdown.Deductions.NPF,
		p.Breakdown.Deductions.Other, p.Breakdown.Deductions.Total,
		p.Breakdown.Employer.ACC, p.Breakdown.Employer.NPF, p.Breakdown.Employer.Total,
		p.Breakdown.NetPayable, p.WeekNo, p.MonthNo, p.Year, p.TaxVersion,
	)

	created, err := scanPayslip(row)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payslip_employee_payroll") {
			return payslip.Payslip{}, payslip.ErrPayslipAlreadyExists
		}
		return payslip.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return created, nil
}

func (r *payslipRepository) GetByEmployeePayroll(ctx context.Context, employeeID, payrollID, employerID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payslipColumns + `
		FROM payslips
		WHERE employee_id = $1 AND payroll_id = $2 AND employer_id = $3`

	p, err := scanPayslip(q.QueryRow(ctx, query, employeeID, payrollID, employerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) ListByPayrollID(ctx context.Context, payrollID, employerID string) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payslipColumns + `
		FROM payslips
		WHERE payroll_id = $1 AND employer_id = $2
		ORDER BY employee_name, employee_id`

	rows, err := q.Query(ctx, query, payrollID, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	return collectPayslips(rows)
}

func (r *payslipRepository) ListByEmployerPeriod(ctx context.Context, employerID string, from, to time.Time) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payslipColumns + `
		FROM payslips
		WHERE employer_id = $1 AND period_start >= $2 AND period_end <= $3
		ORDER BY employee_name, employee_id, period_start`

	rows, err := q.Query(ctx, query, employerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips by period: %w", err)
	}
	defer rows.Close()

	return collectPayslips(rows)
}

func (r *payslipRepository) CountByPayrollID(ctx context.Context, payrollID, employerID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM payslips WHERE payroll_id = $1 AND employer_id = $2`,
		payrollID, employerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	return count, nil
}

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var p payslip.Payslip
	var allowanceLines, deductionLines []byte

	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.EmployeeName, &p.EmployerID, &p.PayrollID,
		&p.Period.StartDate, &p.Period.EndDate, &p.Period.TotalDays, &p.Period.ExpectedBaseHours,
		&p.Work.TotalWorkHours, &p.Work.OvertimeHours,
		&p.Rate.PayType, &p.Rate.HourlyRate, &p.Rate.OvertimeRate, &p.Rate.PeriodSalary,
		&allowanceLines, &deductionLines,
		&p.Breakdown.BaseSalary, &p.Breakdown.Allowances, &p.Breakdown.OvertimePay,
		&p.Breakdown.Deductions.Paye, &p.Breakdown.Deductions.ACC, &p.Breakdown.Deductions.NPF,
		&p.Breakdown.Deductions.Other, &p.Breakdown.Deductions.Total,
		&p.Breakdown.Employer.ACC, &p.Breakdown.Employer.NPF, &p.Breakdown.Employer.Total,
		&p.Breakdown.NetPayable, &p.WeekNo, &p.MonthNo, &p.Year, &p.TaxVersion, &p.CreatedAt,
	)
	if err != nil {
		return payslip.Payslip{}, err
	}

	if len(allowanceLines) > 0 {
		if err := json.Unmarshal(allowanceLines, &p.Allowances); err != nil {
			return payslip.Payslip{}, fmt.Errorf("failed to decode allowance lines: %w", err)
		}
	}
	if len(deductionLines) > 0 {
		if err := json.Unmarshal(deductionLines, &p.Deductions); err != nil {
			return payslip.Payslip{}, fmt.Errorf("failed to decode deduction lines: %w", err)
		}
	}

	return p, nil
}

func collectPayslips(rows pgx.Rows) ([]payslip.Payslip, error) {
	var result []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payslips: %w", err)
	}
	return result, nil
}
