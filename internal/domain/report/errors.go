package report

import "errors"

var (
	// ErrNoPayslipsInRange is the "empty but valid" outcome: no payslips fall
	// inside the requested window. Distinct from a storage failure.
	ErrNoPayslipsInRange = errors.New("no payslips found in the requested period")
	ErrInvalidKind       = errors.New("invalid report kind")
)
