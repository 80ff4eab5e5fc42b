package payroll

import (
	"time"

	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
)

// WeekOfYear returns the day-of-year based week number for t, 1-based:
// days 1-7 are week 1, days 8-14 week 2, and so on.
func WeekOfYear(t time.Time) int {
	return (t.YearDay()-1)/7 + 1
}

// FortnightIndex maps a week number to its fortnight slot, 1-based:
// weeks 1-2 form fortnight 1.
func FortnightIndex(weekNo int) int {
	return (weekNo + 1) / 2
}

// NewPayPeriod derives the pay window for a batch: inclusive day count plus
// the expected base hours (configured hours/week scaled by the period
// type's multiplier).
func NewPayPeriod(from, to time.Time, periodType taxrule.PeriodType, settings taxrule.Settings) (payslip.PayPeriod, error) {
	if !from.Before(to) {
		return payslip.PayPeriod{}, payslip.ErrInvalidPeriod
	}

	mult, err := settings.PayMultiplier(periodType)
	if err != nil {
		return payslip.PayPeriod{}, err
	}

	return payslip.PayPeriod{
		StartDate:         from,
		EndDate:           to,
		TotalDays:         int(to.Sub(from).Hours()/24) + 1,
		ExpectedBaseHours: settings.BaseHoursPerWeek.Mul(mult),
	}, nil
}
