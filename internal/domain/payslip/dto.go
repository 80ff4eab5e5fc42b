package payslip

import "github.com/shopspring/decimal"

type DeductionsResponse struct {
	Paye  decimal.Decimal `json:"paye"`
	ACC   decimal.Decimal `json:"acc"`
	NPF   decimal.Decimal `json:"npf"`
	Other decimal.Decimal `json:"other"`
	Total decimal.Decimal `json:"total"`
}

type EmployerContributionsResponse struct {
	ACC   decimal.Decimal `json:"acc"`
	NPF   decimal.Decimal `json:"npf"`
	Total decimal.Decimal `json:"total"`
}

type Response struct {
	ID             string                        `json:"id"`
	EmployeeID     string                        `json:"employee_id"`
	EmployeeName   string                        `json:"employee_name"`
	EmployerID     string                        `json:"employer_id"`
	PayrollID      string                        `json:"payroll_id"`
	PeriodStart    string                        `json:"period_start"`
	PeriodEnd      string                        `json:"period_end"`
	TotalDays      int                           `json:"total_days"`
	TotalWorkHours decimal.Decimal               `json:"total_work_hours"`
	OvertimeHours  decimal.Decimal               `json:"overtime_hours"`
	PayType        string                        `json:"pay_type"`
	HourlyRate     decimal.Decimal               `json:"hourly_rate"`
	OvertimeRate   decimal.Decimal               `json:"overtime_rate"`
	BaseSalary     decimal.Decimal               `json:"base_salary"`
	Allowances     decimal.Decimal               `json:"allowances"`
	OvertimePay    decimal.Decimal               `json:"overtime_pay"`
	AllowanceLines []Line                        `json:"allowance_lines,omitempty"`
	DeductionLines []Line                        `json:"deduction_lines,omitempty"`
	Deductions     DeductionsResponse            `json:"deductions"`
	Employer       EmployerContributionsResponse `json:"employer_contributions"`
	NetPayable     decimal.Decimal               `json:"net_payable"`
	WeekNo         int                           `json:"week_no"`
	MonthNo        int                           `json:"month_no"`
	Year           int                           `json:"year"`
	TaxVersion     int                           `json:"tax_version"`
}

func ToResponse(p Payslip) Response {
	return Response{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		EmployeeName:   p.EmployeeName,
		EmployerID:     p.EmployerID,
		PayrollID:      p.PayrollID,
		PeriodStart:    p.Period.StartDate.Format("2006-01-02"),
		PeriodEnd:      p.Period.EndDate.Format("2006-01-02"),
		TotalDays:      p.Period.TotalDays,
		TotalWorkHours: p.Work.TotalWorkHours,
		OvertimeHours:  p.Work.OvertimeHours,
		PayType:        string(p.Rate.PayType),
		HourlyRate:     p.Rate.HourlyRate,
		OvertimeRate:   p.Rate.OvertimeRate,
		BaseSalary:     p.Breakdown.BaseSalary,
		Allowances:     p.Breakdown.Allowances,
		OvertimePay:    p.Breakdown.OvertimePay,
		AllowanceLines: p.Allowances,
		DeductionLines: p.Deductions,
		Deductions: DeductionsResponse{
			Paye:  p.Breakdown.Deductions.Paye,
			ACC:   p.Breakdown.Deductions.ACC,
			NPF:   p.Breakdown.Deductions.NPF,
			Other: p.Breakdown.Deductions.Other,
			Total: p.Breakdown.Deductions.Total,
		},
		Employer: EmployerContributionsResponse{
			ACC:   p.Breakdown.Employer.ACC,
			NPF:   p.Breakdown.Employer.NPF,
			Total: p.Breakdown.Employer.Total,
		},
		NetPayable: p.Breakdown.NetPayable,
		WeekNo:     p.WeekNo,
		MonthNo:    p.MonthNo,
		Year:       p.Year,
		TaxVersion: p.TaxVersion,
	}
}

func ToResponses(payslips []Payslip) []Response {
	result := make([]Response, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, ToResponse(p))
	}
	return result
}
