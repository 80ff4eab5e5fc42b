package report

import (
	"sort"

	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
	"github.com/pacifichr/payroll-backend-go/internal/domain/report"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/shopspring/decimal"
)

// maxPeriodSlots caps how many period columns one schedule renders. A
// monthly schedule of weekly pay runs has at most 5 weeks.
const maxPeriodSlots = 5

// periodIndex maps a payslip onto its column for the requested granularity.
// Week and month numbers were fixed at generation time; aggregation never
// re-derives them from dates.
func periodIndex(p payslip.Payslip, pt taxrule.PeriodType) int {
	switch pt {
	case taxrule.PeriodMonthly:
		return p.MonthNo
	case taxrule.PeriodFortnightly:
		return (p.WeekNo + 1) / 2
	default:
		return p.WeekNo
	}
}

// amountFor picks the employee-side contribution the schedule reports.
func amountFor(p payslip.Payslip, kind report.Kind) decimal.Decimal {
	switch kind {
	case report.KindProvidentFund:
		return p.Breakdown.Deductions.NPF
	case report.KindAccident:
		return p.Breakdown.Deductions.ACC
	default:
		return p.Breakdown.Deductions.Paye
	}
}

// Aggregate folds payslips into one row per employee with one amount per
// period slot, plus the sorted list of slots to render.
//
// When several payslips land in the same (employee, period) slot the slot
// keeps the largest amount, never the sum: a batch regenerated or split
// within one period must not double-count that period. Rows come back
// ordered by employee name (ID as tiebreaker) so repeated runs over the
// same data produce identical schedules.
func Aggregate(payslips []payslip.Payslip, pt taxrule.PeriodType, kind report.Kind) ([]report.ContributionRow, []int) {
	byEmployee := make(map[string]*report.ContributionRow)
	slotSet := make(map[int]bool)

	for _, p := range payslips {
		idx := periodIndex(p, pt)
		amount := amountFor(p, kind)

		row, ok := byEmployee[p.EmployeeID]
		if !ok {
			row = &report.ContributionRow{
				EmployeeID:   p.EmployeeID,
				EmployeeName: p.EmployeeName,
				Periods:      make(map[int]decimal.Decimal),
			}
			byEmployee[p.EmployeeID] = row
		}
		if cur, exists := row.Periods[idx]; !exists || amount.GreaterThan(cur) {
			row.Periods[idx] = amount
		}
		slotSet[idx] = true
	}

	slots := make([]int, 0, len(slotSet))
	for idx := range slotSet {
		slots = append(slots, idx)
	}
	sort.Ints(slots)
	if len(slots) > maxPeriodSlots {
		slots = slots[:maxPeriodSlots]
	}

	rows := make([]report.ContributionRow, 0, len(byEmployee))
	for _, row := range byEmployee {
		total := decimal.Zero
		for _, idx := range slots {
			if amt, ok := row.Periods[idx]; ok {
				total = total.Add(amt)
			}
		}
		row.Total = total
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EmployeeName != rows[j].EmployeeName {
			return rows[i].EmployeeName < rows[j].EmployeeName
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})

	return rows, slots
}
