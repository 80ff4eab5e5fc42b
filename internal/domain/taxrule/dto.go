package taxrule

import (
	"github.com/pacifichr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RateResponse struct {
	Employee decimal.Decimal `json:"employee"`
	Employer decimal.Decimal `json:"employer"`
}

type SettingsResponse struct {
	ID                    string                     `json:"id"`
	EmployerID            string                     `json:"employer_id"`
	Version               int                        `json:"version"`
	BaseHoursPerWeek      decimal.Decimal            `json:"base_hours_per_week"`
	OvertimeMultiplier    decimal.Decimal            `json:"overtime_multiplier"`
	MaxRegularHoursPerDay decimal.Decimal            `json:"max_regular_hours_per_day"`
	WorkingDaysPerWeek    int                        `json:"working_days_per_week"`
	PayMultipliers        map[string]decimal.Decimal `json:"weekly_pay_multipliers"`
	ACC                   RateResponse               `json:"acc"`
	NPF                   RateResponse               `json:"npf"`
	PayeBrackets          []PayeBracket              `json:"paye_brackets"`
}

type CreateSettingsRequest struct {
	BaseHoursPerWeek      decimal.Decimal            `json:"base_hours_per_week"`
	OvertimeMultiplier    decimal.Decimal            `json:"overtime_multiplier"`
	MaxRegularHoursPerDay decimal.Decimal            `json:"max_regular_hours_per_day"`
	WorkingDaysPerWeek    int                        `json:"working_days_per_week"`
	PayMultipliers        map[string]decimal.Decimal `json:"weekly_pay_multipliers"`
	ACC                   RateResponse               `json:"acc"`
	NPF                   RateResponse               `json:"npf"`
	PayeBrackets          []PayeBracket              `json:"paye_brackets"`
}

// Validate builds a Settings value from the request and runs the full rule
// set validation, so a malformed bracket table never reaches storage.
func (r *CreateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BaseHoursPerWeek.IsZero() || r.BaseHoursPerWeek.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_hours_per_week", Message: "must be positive"})
	}
	if len(r.PayeBrackets) == 0 {
		errs = append(errs, validator.ValidationError{Field: "paye_brackets", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}

	return r.ToSettings("").Validate()
}

// ToSettings converts the request to the domain entity. Version is assigned
// by the repository.
func (r *CreateSettingsRequest) ToSettings(employerID string) Settings {
	multipliers := make(map[PeriodType]decimal.Decimal, len(r.PayMultipliers))
	for k, v := range r.PayMultipliers {
		multipliers[PeriodType(k)] = v
	}

	return Settings{
		EmployerID:            employerID,
		BaseHoursPerWeek:      r.BaseHoursPerWeek,
		OvertimeMultiplier:    r.OvertimeMultiplier,
		MaxRegularHoursPerDay: r.MaxRegularHoursPerDay,
		WorkingDaysPerWeek:    r.WorkingDaysPerWeek,
		PayMultipliers:        multipliers,
		ACC:                   ContributionRate{Employee: r.ACC.Employee, Employer: r.ACC.Employer},
		NPF:                   ContributionRate{Employee: r.NPF.Employee, Employer: r.NPF.Employer},
		PayeBrackets:          r.PayeBrackets,
	}
}

func ToResponse(s Settings) SettingsResponse {
	multipliers := make(map[string]decimal.Decimal, len(s.PayMultipliers))
	for k, v := range s.PayMultipliers {
		multipliers[string(k)] = v
	}

	return SettingsResponse{
		ID:                    s.ID,
		EmployerID:            s.EmployerID,
		Version:               s.Version,
		BaseHoursPerWeek:      s.BaseHoursPerWeek,
		OvertimeMultiplier:    s.OvertimeMultiplier,
		MaxRegularHoursPerDay: s.MaxRegularHoursPerDay,
		WorkingDaysPerWeek:    s.WorkingDaysPerWeek,
		PayMultipliers:        multipliers,
		ACC:                   RateResponse{Employee: s.ACC.Employee, Employer: s.ACC.Employer},
		NPF:                   RateResponse{Employee: s.NPF.Employee, Employer: s.NPF.Employer},
		PayeBrackets:          s.PayeBrackets,
	}
}
