package employee

import (
	"time"

	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

// Employee - the slice of the master record the payroll core consumes.
// Master-data maintenance lives outside this service; records arrive here
// already validated.
type Employee struct {
	ID           string
	EmployerID   string
	EmployeeCode string
	FullName     string
	PayType      payslip.PayType
	HourlyRate   decimal.Decimal
	WeeklySalary decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PayLineKind enum
type PayLineKind string

const (
	PayLineAllowance PayLineKind = "allowance"
	PayLineDeduction PayLineKind = "deduction"
)

// PayLine - a recurring allowance or deduction assigned to an employee,
// applied to every payslip while active.
type PayLine struct {
	ID         string
	EmployeeID string
	Kind       PayLineKind
	Code       string
	Amount     decimal.Decimal
	IsActive   bool
}
