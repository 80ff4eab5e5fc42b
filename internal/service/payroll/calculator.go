package payroll

import (
	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ComputeInput carries everything one payslip computation needs. The rule
// set travels with the input: the calculator holds no ambient state, so two
// calls with different tax versions can run side by side.
type ComputeInput struct {
	Period     payslip.PayPeriod
	Work       payslip.WorkRecord
	Rate       payslip.RateInfo
	Allowances []payslip.Line
	Deductions []payslip.Line
	Settings   taxrule.Settings
}

// Compute maps one employee's pay-period inputs to an itemized breakdown.
// All arithmetic is decimal; every component is rounded to 2 decimal places
// (half up) before totals are summed, so the stored invariants
// (net = base + allowances + overtime - deductions.total, etc.) hold
// exactly, not approximately.
func Compute(in ComputeInput) (payslip.Breakdown, error) {
	if err := validateComputeInput(in); err != nil {
		return payslip.Breakdown{}, err
	}
	if err := in.Settings.Validate(); err != nil {
		return payslip.Breakdown{}, err
	}

	expected := in.Period.ExpectedBaseHours

	// Base pay. Salaried employees are paid the fixed period salary
	// regardless of hours; hourly employees are paid worked hours capped at
	// the period's expected base hours (the excess is overtime).
	var baseSalary, hourlyRate decimal.Decimal
	switch in.Rate.PayType {
	case payslip.PayTypeSalary:
		baseSalary = in.Rate.PeriodSalary
		if expected.IsPositive() {
			hourlyRate = in.Rate.PeriodSalary.Div(expected)
		}
	default:
		baseSalary = decimal.Min(in.Work.TotalWorkHours, expected).Mul(in.Rate.HourlyRate)
		hourlyRate = in.Rate.HourlyRate
	}

	// Overtime: taken from the work record when the attendance source has
	// already segregated it, derived from the excess over expected hours
	// otherwise.
	overtimeHours := in.Work.OvertimeHours
	if overtimeHours.IsZero() {
		overtimeHours = decimal.Max(decimal.Zero, in.Work.TotalWorkHours.Sub(expected))
	}
	overtimePay := overtimeHours.Mul(hourlyRate).Mul(in.Settings.OvertimeMultiplier)

	allowances := sumLines(in.Allowances)
	other := sumLines(in.Deductions)

	baseSalary = baseSalary.Round(2)
	overtimePay = overtimePay.Round(2)
	allowances = allowances.Round(2)
	other = other.Round(2)

	// Gross pay is the contribution base for every statutory rate.
	gross := baseSalary.Add(overtimePay).Add(allowances)

	paye, err := taxrule.ComputePaye(gross, in.Settings.PayeBrackets)
	if err != nil {
		return payslip.Breakdown{}, err
	}

	deductions := payslip.DeductionBreakdown{
		Paye:  paye.Round(2),
		ACC:   gross.Mul(in.Settings.ACC.Employee).Round(2),
		NPF:   gross.Mul(in.Settings.NPF.Employee).Round(2),
		Other: other,
	}
	deductions.Total = deductions.Paye.Add(deductions.ACC).Add(deductions.NPF).Add(deductions.Other)

	employer := payslip.EmployerContributions{
		ACC: gross.Mul(in.Settings.ACC.Employer).Round(2),
		NPF: gross.Mul(in.Settings.NPF.Employer).Round(2),
	}
	employer.Total = employer.ACC.Add(employer.NPF)

	return payslip.Breakdown{
		BaseSalary:  baseSalary,
		Allowances:  allowances,
		OvertimePay: overtimePay,
		Deductions:  deductions,
		Employer:    employer,
		NetPayable:  gross.Sub(deductions.Total),
	}, nil
}

func validateComputeInput(in ComputeInput) error {
	var errs validator.ValidationErrors

	if !in.Period.StartDate.Before(in.Period.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "start date must precede end date"})
	}
	if in.Period.ExpectedBaseHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "expected_base_hours", Message: "must be non-negative"})
	}
	if in.Work.TotalWorkHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_work_hours", Message: "must be non-negative"})
	}
	if in.Work.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}

	switch in.Rate.PayType {
	case payslip.PayTypeHour:
		if in.Rate.HourlyRate.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
		}
	case payslip.PayTypeSalary:
		if in.Rate.PeriodSalary.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "period_salary", Message: "must be non-negative"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "pay_type", Message: "must be hour or salary"})
	}

	for _, l := range in.Allowances {
		if l.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "allowances." + l.ID, Message: "must be non-negative"})
		}
	}
	for _, l := range in.Deductions {
		if l.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "deductions." + l.ID, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func sumLines(lines []payslip.Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}
