package taxrule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType enum - pay period granularity
type PeriodType string

const (
	PeriodWeekly      PeriodType = "weekly"
	PeriodFortnightly PeriodType = "fortnightly"
	PeriodMonthly     PeriodType = "monthly"
)

func ParsePeriodType(s string) (PeriodType, error) {
	switch PeriodType(s) {
	case PeriodWeekly, PeriodFortnightly, PeriodMonthly:
		return PeriodType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriodType, s)
}

// ContributionRate - employee/employer split for a flat-rate statutory scheme
type ContributionRate struct {
	Employee decimal.Decimal
	Employer decimal.Decimal
}

// PayeBracket - one marginal-rate band. Max == nil marks the unbounded top band.
type PayeBracket struct {
	ID   string           `json:"id"`
	Min  decimal.Decimal  `json:"min"`
	Max  *decimal.Decimal `json:"max,omitempty"`
	Rate decimal.Decimal  `json:"rate"`
}

// Settings - versioned tax/contribution rule set. Rows are immutable once
// created; rule changes are new versions so historical payslips stay
// reproducible against the version that computed them.
type Settings struct {
	ID                    string
	EmployerID            string
	Version               int
	BaseHoursPerWeek      decimal.Decimal
	OvertimeMultiplier    decimal.Decimal
	MaxRegularHoursPerDay decimal.Decimal
	WorkingDaysPerWeek    int
	PayMultipliers        map[PeriodType]decimal.Decimal
	ACC                   ContributionRate
	NPF                   ContributionRate
	PayeBrackets          []PayeBracket
	CreatedAt             time.Time
}

// PayMultiplier returns how many base weeks one pay period of the given
// granularity covers.
func (s Settings) PayMultiplier(pt PeriodType) (decimal.Decimal, error) {
	m, ok := s.PayMultipliers[pt]
	if !ok || !m.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrMissingPayMultiplier, pt)
	}
	return m, nil
}

// Validate checks the rule set is internally consistent. Any failure here is
// a configuration error: surfaced immediately, never retried.
func (s Settings) Validate() error {
	if !s.BaseHoursPerWeek.IsPositive() {
		return fmt.Errorf("%w: base_hours_per_week %s", ErrInvalidHours, s.BaseHoursPerWeek)
	}
	if s.OvertimeMultiplier.IsNegative() {
		return fmt.Errorf("%w: overtime_multiplier %s", ErrNegativeRate, s.OvertimeMultiplier)
	}
	if s.MaxRegularHoursPerDay.IsNegative() {
		return fmt.Errorf("%w: max_regular_hours_per_day %s", ErrInvalidHours, s.MaxRegularHoursPerDay)
	}
	if s.WorkingDaysPerWeek < 1 || s.WorkingDaysPerWeek > 7 {
		return fmt.Errorf("%w: working_days_per_week %d", ErrInvalidHours, s.WorkingDaysPerWeek)
	}
	for _, pt := range []PeriodType{PeriodWeekly, PeriodFortnightly, PeriodMonthly} {
		if _, err := s.PayMultiplier(pt); err != nil {
			return err
		}
	}
	for _, rate := range []decimal.Decimal{s.ACC.Employee, s.ACC.Employer, s.NPF.Employee, s.NPF.Employer} {
		if rate.IsNegative() {
			return fmt.Errorf("%w: %s", ErrNegativeRate, rate)
		}
	}
	return ValidateBrackets(s.PayeBrackets)
}

// ValidateBrackets enforces the bracket table invariant: non-empty, sorted
// ascending by Min, contiguous, non-overlapping, last band unbounded.
func ValidateBrackets(brackets []PayeBracket) error {
	if len(brackets) == 0 {
		return ErrNoBrackets
	}
	for i, b := range brackets {
		if b.Min.IsNegative() {
			return fmt.Errorf("%w: bracket %d min %s", ErrBracketsNotSorted, i, b.Min)
		}
		if b.Rate.IsNegative() {
			return fmt.Errorf("%w: bracket %d rate %s", ErrNegativeRate, i, b.Rate)
		}
		if b.Max == nil {
			if i != len(brackets)-1 {
				return fmt.Errorf("%w: bracket %d is unbounded but not last", ErrBracketsOverlap, i)
			}
			continue
		}
		if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("%w: bracket %d max %s <= min %s", ErrBracketsNotSorted, i, b.Max, b.Min)
		}
		if i == len(brackets)-1 {
			return fmt.Errorf("%w: last bracket has max %s", ErrBracketNotUnbounded, b.Max)
		}
		next := brackets[i+1]
		if next.Min.LessThan(*b.Max) {
			return fmt.Errorf("%w: bracket %d max %s overlaps bracket %d min %s", ErrBracketsOverlap, i, b.Max, i+1, next.Min)
		}
		if next.Min.GreaterThan(*b.Max) {
			return fmt.Errorf("%w: gap between bracket %d max %s and bracket %d min %s", ErrBracketsGap, i, b.Max, i+1, next.Min)
		}
	}
	return nil
}
