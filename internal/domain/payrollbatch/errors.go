package payrollbatch

import "errors"

var (
	ErrBatchNotFound      = errors.New("payroll batch not found")
	ErrBatchPeriodOverlap = errors.New("payroll batch period overlaps an existing batch")
	ErrBatchNotGenerated  = errors.New("payroll batch has no generated payslips")
)
