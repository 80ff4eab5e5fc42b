package response

import (
	"errors"
	"net/http"

	"github.com/pacifichr/payroll-backend-go/internal/domain/employee"
	"github.com/pacifichr/payroll-backend-go/internal/domain/payrollbatch"
	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
	"github.com/pacifichr/payroll-backend-go/internal/domain/report"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Tax rule configuration errors. These are caller-fixable: the rule
	// set itself is inconsistent.
	case errors.Is(err, taxrule.ErrSettingsNotFound):
		NotFound(w, "Tax settings not found")
	case errors.Is(err, taxrule.ErrNoBrackets),
		errors.Is(err, taxrule.ErrBracketsNotSorted),
		errors.Is(err, taxrule.ErrBracketsOverlap),
		errors.Is(err, taxrule.ErrBracketsGap),
		errors.Is(err, taxrule.ErrBracketNotUnbounded),
		errors.Is(err, taxrule.ErrNegativeRate),
		errors.Is(err, taxrule.ErrInvalidHours),
		errors.Is(err, taxrule.ErrInvalidPeriodType),
		errors.Is(err, taxrule.ErrMissingPayMultiplier):
		BadRequest(w, err.Error(), nil)

	// Payroll batch errors
	case errors.Is(err, payrollbatch.ErrBatchNotFound):
		NotFound(w, "Payroll batch not found")
	case errors.Is(err, payrollbatch.ErrBatchPeriodOverlap):
		Conflict(w, "Payroll batch period overlaps an existing batch")
	case errors.Is(err, payrollbatch.ErrBatchNotGenerated):
		BadRequest(w, "Payroll batch has no generated payslips", nil)

	// Payslip errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrPayslipAlreadyExists):
		Conflict(w, "Payslip already exists for this employee and payroll batch")
	case errors.Is(err, payslip.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is not active", nil)
	case errors.Is(err, employee.ErrNoPayRate):
		BadRequest(w, "Employee has no pay rate configured", nil)

	// Report errors
	case errors.Is(err, report.ErrNoPayslipsInRange):
		NotFound(w, "No payslips found in the requested period")
	case errors.Is(err, report.ErrInvalidKind):
		BadRequest(w, "Report kind must be tax, providentFund or accident", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
