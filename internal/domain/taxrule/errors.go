package taxrule

import "errors"

var (
	ErrSettingsNotFound     = errors.New("tax settings not found")
	ErrNoBrackets           = errors.New("paye brackets missing")
	ErrBracketsNotSorted    = errors.New("paye brackets not sorted ascending")
	ErrBracketsOverlap      = errors.New("paye brackets overlap")
	ErrBracketsGap          = errors.New("paye brackets not contiguous")
	ErrBracketNotUnbounded  = errors.New("last paye bracket must be unbounded")
	ErrNegativeRate         = errors.New("rate must be non-negative")
	ErrInvalidHours         = errors.New("invalid hours configuration")
	ErrInvalidPeriodType    = errors.New("invalid period type")
	ErrMissingPayMultiplier = errors.New("pay multiplier missing for period type")
)
