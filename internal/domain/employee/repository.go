package employee

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines read access to the employee master records the payroll
// core needs. All methods include employerID to prevent cross-employer data
// access.
type Repository interface {
	GetByID(ctx context.Context, id, employerID string) (Employee, error)
	GetByEmployerID(ctx context.Context, employerID string) ([]Employee, error)
	GetActiveByEmployerID(ctx context.Context, employerID string) ([]Employee, error)
	GetPayLines(ctx context.Context, employeeID, employerID string) ([]PayLine, error)
}

// WorkSummary - hours worked per employee over a batch window, aggregated
// from the attendance store. Never negative.
type WorkSummary struct {
	EmployeeID     string
	TotalWorkHours decimal.Decimal
	OvertimeHours  decimal.Decimal
}

// WorkRecordRepository reads attendance aggregates. The core consumes the
// summed hours only; raw attendance logs are parsed upstream.
type WorkRecordRepository interface {
	GetWorkSummary(ctx context.Context, employerID string, from, to time.Time, employeeIDs []string) ([]WorkSummary, error)
}
