package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pacifichr/payroll-backend-go/internal/domain/employee"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employer_id, employee_code, full_name,
	pay_type, hourly_rate, weekly_salary, is_active,
	created_at, updated_at`

func (r *employeeRepository) GetByID(ctx context.Context, id, employerID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND employer_id = $2`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, employerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// GetByEmployerID returns every employee for the employer, deactivated ones
// included. Statutory schedules need codes for employees who were paid in
// the window but have since left.
func (r *employeeRepository) GetByEmployerID(ctx context.Context, employerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE employer_id = $1
		ORDER BY full_name, id`

	rows, err := q.Query(ctx, query, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var result []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return result, nil
}

func (r *employeeRepository) GetActiveByEmployerID(ctx context.Context, employerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE employer_id = $1 AND is_active
		ORDER BY full_name, id`

	rows, err := q.Query(ctx, query, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var result []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return result, nil
}

func (r *employeeRepository) GetPayLines(ctx context.Context, employeeID, employerID string) ([]employee.PayLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.kind, l.code, l.amount, l.is_active
		FROM employee_pay_lines l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.employee_id = $1 AND e.employer_id = $2 AND l.is_active
		ORDER BY l.kind, l.code`

	rows, err := q.Query(ctx, query, employeeID, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee pay lines: %w", err)
	}
	defer rows.Close()

	var result []employee.PayLine
	for rows.Next() {
		var l employee.PayLine
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.Kind, &l.Code, &l.Amount, &l.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan employee pay line: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee pay lines: %w", err)
	}

	return result, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployerID, &e.EmployeeCode, &e.FullName,
		&e.PayType, &e.HourlyRate, &e.WeeklySalary, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}
