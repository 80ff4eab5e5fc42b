package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/pacifichr/payroll-backend-go/internal/domain/employee"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/database"
)

type workRecordRepository struct {
	db *database.DB
}

func NewWorkRecordRepository(db *database.DB) employee.WorkRecordRepository {
	return &workRecordRepository{db: db}
}

// GetWorkSummary sums attendance hours per employee over the batch window.
// Overtime is whatever the attendance source recorded beyond the daily
// regular-hours threshold; employees with no attendance rows are simply
// absent from the result.
func (r *workRecordRepository) GetWorkSummary(ctx context.Context, employerID string, from, to time.Time, employeeIDs []string) ([]employee.WorkSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.employee_id,
			   COALESCE(SUM(a.work_hours), 0) AS total_work_hours,
			   COALESCE(SUM(a.overtime_hours), 0) AS overtime_hours
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE e.employer_id = $1
		  AND a.work_date >= $2 AND a.work_date <= $3
		  AND ($4::uuid[] IS NULL OR a.employee_id = ANY($4))
		GROUP BY a.employee_id`

	var ids interface{}
	if len(employeeIDs) > 0 {
		ids = employeeIDs
	}

	rows, err := q.Query(ctx, query, employerID, from, to, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get work summary: %w", err)
	}
	defer rows.Close()

	var result []employee.WorkSummary
	for rows.Next() {
		var s employee.WorkSummary
		if err := rows.Scan(&s.EmployeeID, &s.TotalWorkHours, &s.OvertimeHours); err != nil {
			return nil, fmt.Errorf("failed to scan work summary: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read work summaries: %w", err)
	}

	return result, nil
}
