package report

import (
	"time"

	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Kind enum - which statutory schedule to render. Each kind selects a
// different contribution field from the payslip breakdown.
type Kind string

const (
	KindTax           Kind = "tax"
	KindProvidentFund Kind = "providentFund"
	KindAccident      Kind = "accident"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTax, KindProvidentFund, KindAccident:
		return Kind(s), nil
	}
	return "", ErrInvalidKind
}

// ContributionRow - one employee's aggregated contributions, keyed by
// period index (week/fortnight/month number). Derived at report time, never
// persisted.
type ContributionRow struct {
	EmployeeID   string
	EmployeeCode string
	EmployeeName string
	Periods      map[int]decimal.Decimal
	Total        decimal.Decimal
}

type GenerateRequest struct {
	StartDate  string
	EndDate    string
	PeriodType string
	Kind       string
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	from, errFrom := time.Parse("2006-01-02", r.StartDate)
	if errFrom != nil {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	to, errTo := time.Parse("2006-01-02", r.EndDate)
	if errTo != nil {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if errFrom == nil && errTo == nil && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if _, err := taxrule.ParsePeriodType(r.PeriodType); err != nil {
		errs = append(errs, validator.ValidationError{Field: "period_type", Message: "must be weekly, fortnightly or monthly"})
	}
	if _, err := ParseKind(r.Kind); err != nil {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be tax, providentFund or accident"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
