package payslip

import "errors"

var (
	ErrPayslipNotFound      = errors.New("payslip not found")
	ErrPayslipAlreadyExists = errors.New("payslip already exists for this employee and payroll")
	ErrInvalidPeriod        = errors.New("pay period start must precede end")
)
