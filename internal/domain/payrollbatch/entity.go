package payrollbatch

import (
	"time"

	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/shopspring/decimal"
)

// Status enum. Transitions are monotonic:
// Pending -> Partially Approved -> Approved, never backwards.
type Status string

const (
	StatusPending           Status = "Pending"
	StatusPartiallyApproved Status = "Partially Approved"
	StatusApproved          Status = "Approved"
)

// Batch - one payroll run for an employer over a date window. Windows for
// the same employer must not overlap (inclusive test on both bounds).
type Batch struct {
	PayrollID          string
	EmployerID         string
	DateFrom           time.Time
	DateTo             time.Time
	Year               int
	MonthNo            int
	WeekNo             int
	PeriodType         taxrule.PeriodType
	Status             Status
	ProcessedEmployees []string
	TotalAmount        decimal.Decimal
	TotalEmployees     int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ApplyApproval folds employeeIDs into the processed set and accumulates
// their amounts. Idempotent over the set: an employee already processed
// contributes neither to the set nor to the total again. totalPayslips is
// the number of payslips generated under the batch; the status flips to
// Approved once every one of them has a processed employee.
func (b Batch) ApplyApproval(employeeIDs []string, amounts []decimal.Decimal, totalPayslips int) (processed []string, total decimal.Decimal, status Status) {
	seen := make(map[string]bool, len(b.ProcessedEmployees))
	processed = append(processed, b.ProcessedEmployees...)
	for _, id := range processed {
		seen[id] = true
	}

	total = b.TotalAmount
	for i, id := range employeeIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		processed = append(processed, id)
		total = total.Add(amounts[i])
	}

	status = StatusPartiallyApproved
	if b.Status == StatusApproved || (totalPayslips > 0 && len(processed) >= totalPayslips) {
		status = StatusApproved
	}
	return processed, total, status
}
