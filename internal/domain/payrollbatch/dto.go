package payrollbatch

import (
	"time"

	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateBatchRequest struct {
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	PeriodType string `json:"period_type"`
}

func (r *CreateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	from, errFrom := time.Parse("2006-01-02", r.DateFrom)
	if errFrom != nil {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be a date in YYYY-MM-DD format"})
	}
	to, errTo := time.Parse("2006-01-02", r.DateTo)
	if errTo != nil {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be a date in YYYY-MM-DD format"})
	}
	if errFrom == nil && errTo == nil && !from.Before(to) {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be after date_from"})
	}
	if _, err := taxrule.ParsePeriodType(r.PeriodType); err != nil {
		errs = append(errs, validator.ValidationError{Field: "period_type", Message: "must be weekly, fortnightly or monthly"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GeneratePayslipsRequest struct {
	PayrollID   string   `json:"-"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
	TaxVersion  *int     `json:"tax_version,omitempty"`
}

type ApproveEmployeesRequest struct {
	PayrollID   string            `json:"-"`
	EmployeeIDs []string          `json:"employee_ids"`
	Amounts     []decimal.Decimal `json:"amounts"`
}

func (r *ApproveEmployeesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "is required"})
	}
	if len(r.EmployeeIDs) != len(r.Amounts) {
		errs = append(errs, validator.ValidationError{Field: "amounts", Message: "must have the same length as employee_ids"})
	}
	for _, a := range r.Amounts {
		if a.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "amounts", Message: "must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchResponse struct {
	PayrollID          string          `json:"payroll_id"`
	EmployerID         string          `json:"employer_id"`
	DateFrom           string          `json:"date_from"`
	DateTo             string          `json:"date_to"`
	Year               int             `json:"year"`
	MonthNo            int             `json:"month_no"`
	WeekNo             int             `json:"week_no"`
	PeriodType         string          `json:"period_type"`
	Status             string          `json:"status"`
	ProcessedEmployees []string        `json:"processed_employees"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	TotalEmployees     int             `json:"total_employees"`
}

func ToResponse(b Batch) BatchResponse {
	processed := b.ProcessedEmployees
	if processed == nil {
		processed = []string{}
	}

	return BatchResponse{
		PayrollID:          b.PayrollID,
		EmployerID:         b.EmployerID,
		DateFrom:           b.DateFrom.Format("2006-01-02"),
		DateTo:             b.DateTo.Format("2006-01-02"),
		Year:               b.Year,
		MonthNo:            b.MonthNo,
		WeekNo:             b.WeekNo,
		PeriodType:         string(b.PeriodType),
		Status:             string(b.Status),
		ProcessedEmployees: processed,
		TotalAmount:        b.TotalAmount,
		TotalEmployees:     b.TotalEmployees,
	}
}

func ToResponses(batches []Batch) []BatchResponse {
	result := make([]BatchResponse, 0, len(batches))
	for _, b := range batches {
		result = append(result, ToResponse(b))
	}
	return result
}
