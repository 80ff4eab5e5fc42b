package payroll

import (
	"testing"
	"time"

	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testSettings() taxrule.Settings {
	return taxrule.Settings{
		ID:                    "ts-1",
		EmployerID:            "emp-co",
		Version:               1,
		BaseHoursPerWeek:      dec("40"),
		OvertimeMultiplier:    dec("1.5"),
		MaxRegularHoursPerDay: dec("8"),
		WorkingDaysPerWeek:    5,
		PayMultipliers: map[taxrule.PeriodType]decimal.Decimal{
			taxrule.PeriodWeekly:      dec("1"),
			taxrule.PeriodFortnightly: dec("2"),
			taxrule.PeriodMonthly:     dec("4.33"),
		},
		ACC: taxrule.ContributionRate{Employee: dec("0.01"), Employer: dec("0.01")},
		NPF: taxrule.ContributionRate{Employee: dec("0.1"), Employer: dec("0.1")},
		PayeBrackets: []taxrule.PayeBracket{
			{ID: "b1", Min: dec("0"), Max: decPtr("1000"), Rate: dec("0")},
			{ID: "b2", Min: dec("1000"), Max: decPtr("4000"), Rate: dec("0.2")},
			{ID: "b3", Min: dec("4000"), Rate: dec("0.3")},
		},
	}
}

func fortnight() payslip.PayPeriod {
	return payslip.PayPeriod{
		StartDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TotalDays:         14,
		ExpectedBaseHours: dec("80"),
	}
}

func TestCompute_HourlyWithOvertime(t *testing.T) {
	got, err := Compute(ComputeInput{
		Period: fortnight(),
		Work:   payslip.WorkRecord{TotalWorkHours: dec("90")},
		Rate:   payslip.RateInfo{PayType: payslip.PayTypeHour, HourlyRate: dec("20")},
		Settings: testSettings(),
	})
	require.NoError(t, err)

	// 80 regular hours at 20, 10 excess hours at 20 * 1.5
	assert.True(t, got.BaseSalary.Equal(dec("1600")), "base = %s", got.BaseSalary)
	assert.True(t, got.OvertimePay.Equal(dec("300")), "overtime = %s", got.OvertimePay)

	// gross 1900: PAYE 900 * 0.2 = 180, ACC 19, NPF 190
	assert.True(t, got.Deductions.Paye.Equal(dec("180")), "paye = %s", got.Deductions.Paye)
	assert.True(t, got.Deductions.ACC.Equal(dec("19")), "acc = %s", got.Deductions.ACC)
	assert.True(t, got.Deductions.NPF.Equal(dec("190")), "npf = %s", got.Deductions.NPF)
	assert.True(t, got.Deductions.Total.Equal(dec("389")), "total deductions = %s", got.Deductions.Total)
	assert.True(t, got.NetPayable.Equal(dec("1511")), "net = %s", got.NetPayable)

	// employer side mirrors the rates but never reduces net pay
	assert.True(t, got.Employer.ACC.Equal(dec("19")))
	assert.True(t, got.Employer.NPF.Equal(dec("190")))
	assert.True(t, got.Employer.Total.Equal(dec("209")))
}

func TestCompute_HourlyCappedAtExpectedHours(t *testing.T) {
	got, err := Compute(ComputeInput{
		Period: fortnight(),
		Work:   payslip.WorkRecord{TotalWorkHours: dec("60")},
		Rate:   payslip.RateInfo{PayType: payslip.PayTypeHour, HourlyRate: dec("20")},
		Settings: testSettings(),
	})
	require.NoError(t, err)

	assert.True(t, got.BaseSalary.Equal(dec("1200")), "base = %s", got.BaseSalary)
	assert.True(t, got.OvertimePay.IsZero(), "overtime = %s", got.OvertimePay)
}

func TestCompute_SalariedIgnoresHoursForBase(t *testing.T) {
	for _, hours := range []string{"0", "60", "80"} {
		got, err := Compute(ComputeInput{
			Period: fortnight(),
			Work:   payslip.WorkRecord{TotalWorkHours: dec(hours)},
			Rate:   payslip.RateInfo{PayType: payslip.PayTypeSalary, PeriodSalary: dec("2400")},
			Settings: testSettings(),
		})
		require.NoError(t, err)
		assert.True(t, got.BaseSalary.Equal(dec("2400")), "hours %s: base = %s", hours, got.BaseSalary)
	}
}

func TestCompute_SalariedOvertimeUsesDerivedHourlyRate(t *testing.T) {
	// 2400 over 80 expected hours derives 30/hour; 4 overtime hours at 1.5x
	got, err := Compute(ComputeInput{
		Period: fortnight(),
		Work:   payslip.WorkRecord{TotalWorkHours: dec("84")},
		Rate:   payslip.RateInfo{PayType: payslip.PayTypeSalary, PeriodSalary: dec("2400")},
		Settings: testSettings(),
	})
	require.NoError(t, err)

	assert.True(t, got.OvertimePay.Equal(dec("180")), "overtime = %s", got.OvertimePay)
}

func TestCompute_SegregatedOvertimePreferred(t *testing.T) {
	// When the attendance source reports overtime explicitly, the excess
	// over expected hours is not derived a second time.
	got, err := Compute(ComputeInput{
		Period: fortnight(),
		Work:   payslip.WorkRecord{TotalWorkHours: dec("90"), OvertimeHours: dec("6")},
		Rate:   payslip.RateInfo{PayType: payslip.PayTypeHour, HourlyRate: dec("20")},
		Settings: testSettings(),
	})
	require.NoError(t, err)

	assert.True(t, got.OvertimePay.Equal(dec("180")), "overtime = %s", got.OvertimePay)
}

func TestCompute_AllowancesAndDeductionLines(t *testing.T) {
	got, err := Compute(ComputeInput{
		Period: fortnight(),
		Work:   payslip.WorkRecord{TotalWorkHours: dec("80")},
		Rate:   payslip.RateInfo{PayType: payslip.PayTypeHour, HourlyRate: dec("10")},
		Allowances: []payslip.Line{
			{ID: "housing", Amount: dec("150")},
			{ID: "transport", Amount: dec("50")},
		},
		Deductions: []payslip.Line{
			{ID: "union", Amount: dec("25")},
		},
		Settings: testSettings(),
	})
	require.NoError(t, err)

	// gross = 800 + 200 allowances = 1000, still in the zero PAYE band
	assert.True(t, got.Allowances.Equal(dec("200")), "allowances = %s", got.Allowances)
	assert.True(t, got.Deductions.Paye.IsZero(), "paye = %s", got.Deductions.Paye)
	assert.True(t, got.Deductions.Other.Equal(dec("25")), "other = %s", got.Deductions.Other)

	gross := got.BaseSalary.Add(got.Allowances).Add(got.OvertimePay)
	assert.True(t, got.NetPayable.Equal(gross.Sub(got.Deductions.Total)))
}

func TestCompute_ZeroHoursHourly(t *testing.T) {
	got, err := Compute(ComputeInput{
		Period: fortnight(),
		Work:   payslip.WorkRecord{},
		Rate:   payslip.RateInfo{PayType: payslip.PayTypeHour, HourlyRate: dec("20")},
		Settings: testSettings(),
	})
	require.NoError(t, err)

	assert.True(t, got.BaseSalary.IsZero())
	assert.True(t, got.OvertimePay.IsZero())
	assert.True(t, got.Deductions.Total.IsZero())
	assert.True(t, got.NetPayable.IsZero())
}

func TestCompute_BreakdownInvariantsHold(t *testing.T) {
	// Awkward rates chosen to force rounding on every component.
	settings := testSettings()
	settings.ACC = taxrule.ContributionRate{Employee: dec("0.0133"), Employer: dec("0.0171")}
	settings.NPF = taxrule.ContributionRate{Employee: dec("0.0977"), Employer: dec("0.0977")}

	got, err := Compute(ComputeInput{
		Period: fortnight(),
		Work:   payslip.WorkRecord{TotalWorkHours: dec("87.25")},
		Rate:   payslip.RateInfo{PayType: payslip.PayTypeHour, HourlyRate: dec("19.37")},
		Allowances: []payslip.Line{{ID: "meal", Amount: dec("33.333")}},
		Deductions: []payslip.Line{{ID: "advance", Amount: dec("12.125")}},
		Settings: settings,
	})
	require.NoError(t, err)

	gross := got.BaseSalary.Add(got.Allowances).Add(got.OvertimePay)
	d := got.Deductions
	assert.True(t, d.Total.Equal(d.Paye.Add(d.ACC).Add(d.NPF).Add(d.Other)),
		"deductions.total %s != sum of parts", d.Total)
	assert.True(t, got.NetPayable.Equal(gross.Sub(d.Total)),
		"net %s != gross %s - deductions %s", got.NetPayable, gross, d.Total)
	assert.True(t, got.Employer.Total.Equal(got.Employer.ACC.Add(got.Employer.NPF)))

	// every stored amount carries at most 2 decimal places
	for name, v := range map[string]decimal.Decimal{
		"base":     got.BaseSalary,
		"allow":    got.Allowances,
		"overtime": got.OvertimePay,
		"paye":     d.Paye,
		"acc":      d.ACC,
		"npf":      d.NPF,
		"other":    d.Other,
	} {
		assert.True(t, v.Equal(v.Round(2)), "%s = %s not rounded", name, v)
	}
}

func TestCompute_NegativeInputsRejected(t *testing.T) {
	_, err := Compute(ComputeInput{
		Period: fortnight(),
		Work:   payslip.WorkRecord{TotalWorkHours: dec("-5")},
		Rate:   payslip.RateInfo{PayType: payslip.PayTypeHour, HourlyRate: dec("-20")},
		Deductions: []payslip.Line{{ID: "advance", Amount: dec("-1")}},
		Settings: testSettings(),
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := verrs.ToMap()
	assert.Contains(t, details, "total_work_hours")
	assert.Contains(t, details, "hourly_rate")
	assert.Contains(t, details, "deductions.advance")
}

func TestCompute_UnknownPayTypeRejected(t *testing.T) {
	_, err := Compute(ComputeInput{
		Period:   fortnight(),
		Rate:     payslip.RateInfo{PayType: "commission"},
		Settings: testSettings(),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "pay_type")
}

func TestCompute_InvalidSettingsRejected(t *testing.T) {
	settings := testSettings()
	settings.PayeBrackets = nil

	_, err := Compute(ComputeInput{
		Period:   fortnight(),
		Work:     payslip.WorkRecord{TotalWorkHours: dec("80")},
		Rate:     payslip.RateInfo{PayType: payslip.PayTypeHour, HourlyRate: dec("20")},
		Settings: settings,
	})
	assert.ErrorIs(t, err, taxrule.ErrNoBrackets)
}
