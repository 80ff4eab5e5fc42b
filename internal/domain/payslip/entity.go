package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayType enum
type PayType string

const (
	PayTypeHour   PayType = "hour"
	PayTypeSalary PayType = "salary"
)

// PayPeriod - the time window being paid. StartDate must precede EndDate;
// ExpectedBaseHours is the configured base hours/week scaled to the period
// length.
type PayPeriod struct {
	StartDate         time.Time
	EndDate           time.Time
	TotalDays         int
	ExpectedBaseHours decimal.Decimal
}

// WorkRecord - per-employee aggregate of hours actually worked within a
// pay period. OvertimeHours is hours beyond the regular-hours threshold
// where the attendance source has already segregated them; zero otherwise.
type WorkRecord struct {
	TotalWorkHours decimal.Decimal
	OvertimeHours  decimal.Decimal
}

// RateInfo - how the employee is paid. For salaried employees PeriodSalary
// carries the fixed pay for the period and HourlyRate the derived
// hourly-equivalent used for overtime.
type RateInfo struct {
	PayType      PayType
	HourlyRate   decimal.Decimal
	OvertimeRate decimal.Decimal
	PeriodSalary decimal.Decimal
}

// Line - one allowance or deduction applied to a payslip
type Line struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// DeductionBreakdown - employee-side deductions
type DeductionBreakdown struct {
	Paye  decimal.Decimal
	ACC   decimal.Decimal
	NPF   decimal.Decimal
	Other decimal.Decimal
	Total decimal.Decimal
}

// EmployerContributions - employer-side statutory contributions; reported,
// never subtracted from net pay.
type EmployerContributions struct {
	ACC   decimal.Decimal
	NPF   decimal.Decimal
	Total decimal.Decimal
}

// Breakdown - fully-itemized payslip amounts.
// Invariants: NetPayable = BaseSalary + Allowances + OvertimePay -
// Deductions.Total; Deductions.Total = Paye + ACC + NPF + Other;
// Employer.Total = ACC + NPF.
type Breakdown struct {
	BaseSalary  decimal.Decimal
	Allowances  decimal.Decimal
	OvertimePay decimal.Decimal
	Deductions  DeductionBreakdown
	Employer    EmployerContributions
	NetPayable  decimal.Decimal
}

// Payslip - persisted calculation result, identified by
// (EmployeeID, PayrollID). Immutable once created: corrections are new
// payslips under a new payroll batch, never in-place edits.
type Payslip struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	EmployerID   string
	PayrollID    string
	Period       PayPeriod
	Work         WorkRecord
	Rate         RateInfo
	Allowances   []Line
	Deductions   []Line
	Breakdown    Breakdown
	WeekNo       int
	MonthNo      int
	Year         int
	TaxVersion   int
	CreatedAt    time.Time
}
