package payslip

import (
	"context"
	"time"
)

// Repository defines data access for persisted payslips. Payslips are
// write-once: there is no update method on purpose.
type Repository interface {
	Create(ctx context.Context, p Payslip) (Payslip, error)
	GetByEmployeePayroll(ctx context.Context, employeeID, payrollID, employerID string) (Payslip, error)
	ListByPayrollID(ctx context.Context, payrollID, employerID string) ([]Payslip, error)
	ListByEmployerPeriod(ctx context.Context, employerID string, from, to time.Time) ([]Payslip, error)
	CountByPayrollID(ctx context.Context, payrollID, employerID string) (int, error)
}
