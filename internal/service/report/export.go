package report

import (
	"fmt"
	"time"

	"github.com/pacifichr/payroll-backend-go/internal/domain/report"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var kindTitles = map[report.Kind]string{
	report.KindTax:           "Income Tax (PAYE) Schedule",
	report.KindProvidentFund: "National Provident Fund Schedule",
	report.KindAccident:      "Accident Compensation Schedule",
}

var periodHeadings = map[taxrule.PeriodType]string{
	taxrule.PeriodWeekly:      "Week",
	taxrule.PeriodFortnightly: "Fortnight",
	taxrule.PeriodMonthly:     "Month",
}

// renderWorkbook lays the aggregated rows out as a statutory schedule:
// title block, one column per period slot, a Total column, and a footer
// row of column totals. All amounts render with 2 decimal places.
func renderWorkbook(rows []report.ContributionRow, slots []int, pt taxrule.PeriodType, kind report.Kind, from, to time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	numFmt := "0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	boldAmountStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create total style: %w", err)
	}

	f.SetCellValue(sheet, "A1", kindTitles[kind])
	f.SetCellStyle(sheet, "A1", "A1", boldStyle)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Period: %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")))

	// Header row
	const headerRow = 4
	setCell := func(col, row int, value interface{}, style int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
		if style != 0 {
			return f.SetCellStyle(sheet, cell, cell, style)
		}
		return nil
	}

	headings := []string{"Employee Code", "Employee Name"}
	for _, slot := range slots {
		headings = append(headings, fmt.Sprintf("%s %d", periodHeadings[pt], slot))
	}
	headings = append(headings, "Total")
	for i, h := range headings {
		if err := setCell(i+1, headerRow, h, boldStyle); err != nil {
			return nil, err
		}
	}

	// Data rows
	rowNo := headerRow + 1
	columnTotals := make([]decimal.Decimal, len(slots))
	grandTotal := decimal.Zero
	for _, r := range rows {
		if err := setCell(1, rowNo, r.EmployeeCode, 0); err != nil {
			return nil, err
		}
		if err := setCell(2, rowNo, r.EmployeeName, 0); err != nil {
			return nil, err
		}
		for i, slot := range slots {
			amt := r.Periods[slot]
			if err := setCell(3+i, rowNo, amt.InexactFloat64(), amountStyle); err != nil {
				return nil, err
			}
			columnTotals[i] = columnTotals[i].Add(amt)
		}
		if err := setCell(3+len(slots), rowNo, r.Total.InexactFloat64(), amountStyle); err != nil {
			return nil, err
		}
		grandTotal = grandTotal.Add(r.Total)
		rowNo++
	}

	// Footer totals
	if err := setCell(1, rowNo, "Total", boldStyle); err != nil {
		return nil, err
	}
	for i, ct := range columnTotals {
		if err := setCell(3+i, rowNo, ct.InexactFloat64(), boldAmountStyle); err != nil {
			return nil, err
		}
	}
	if err := setCell(3+len(slots), rowNo, grandTotal.InexactFloat64(), boldAmountStyle); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(sheet, "A", "B", 22); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
