package taxrule

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() Settings {
	return Settings{
		EmployerID:            "emp-co",
		Version:               1,
		BaseHoursPerWeek:      dec("40"),
		OvertimeMultiplier:    dec("1.5"),
		MaxRegularHoursPerDay: dec("8"),
		WorkingDaysPerWeek:    5,
		PayMultipliers: map[PeriodType]decimal.Decimal{
			PeriodWeekly:      dec("1"),
			PeriodFortnightly: dec("2"),
			PeriodMonthly:     dec("4.33"),
		},
		ACC:          ContributionRate{Employee: dec("0.01"), Employer: dec("0.01")},
		NPF:          ContributionRate{Employee: dec("0.1"), Employer: dec("0.1")},
		PayeBrackets: testBrackets(),
	}
}

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, validSettings().Validate())

	t.Run("zero base hours", func(t *testing.T) {
		s := validSettings()
		s.BaseHoursPerWeek = decimal.Zero
		assert.ErrorIs(t, s.Validate(), ErrInvalidHours)
	})

	t.Run("negative contribution rate", func(t *testing.T) {
		s := validSettings()
		s.NPF.Employer = dec("-0.1")
		assert.ErrorIs(t, s.Validate(), ErrNegativeRate)
	})

	t.Run("missing multiplier", func(t *testing.T) {
		s := validSettings()
		delete(s.PayMultipliers, PeriodFortnightly)
		assert.ErrorIs(t, s.Validate(), ErrMissingPayMultiplier)
	})

	t.Run("working days out of range", func(t *testing.T) {
		s := validSettings()
		s.WorkingDaysPerWeek = 8
		assert.ErrorIs(t, s.Validate(), ErrInvalidHours)
	})
}

func TestValidateBrackets(t *testing.T) {
	tests := []struct {
		name     string
		brackets []PayeBracket
		wantErr  error
	}{
		{
			name:    "empty",
			wantErr: ErrNoBrackets,
		},
		{
			name: "single unbounded",
			brackets: []PayeBracket{
				{Min: dec("0"), Rate: dec("0.1")},
			},
		},
		{
			name: "last band bounded",
			brackets: []PayeBracket{
				{Min: dec("0"), Max: decPtr("1000"), Rate: dec("0")},
			},
			wantErr: ErrBracketNotUnbounded,
		},
		{
			name: "unbounded band not last",
			brackets: []PayeBracket{
				{Min: dec("0"), Rate: dec("0")},
				{Min: dec("1000"), Rate: dec("0.2")},
			},
			wantErr: ErrBracketsOverlap,
		},
		{
			name: "overlapping bands",
			brackets: []PayeBracket{
				{Min: dec("0"), Max: decPtr("1000"), Rate: dec("0")},
				{Min: dec("900"), Rate: dec("0.2")},
			},
			wantErr: ErrBracketsOverlap,
		},
		{
			name: "gap between bands",
			brackets: []PayeBracket{
				{Min: dec("0"), Max: decPtr("1000"), Rate: dec("0")},
				{Min: dec("1100"), Rate: dec("0.2")},
			},
			wantErr: ErrBracketsGap,
		},
		{
			name: "negative rate",
			brackets: []PayeBracket{
				{Min: dec("0"), Rate: dec("-0.1")},
			},
			wantErr: ErrNegativeRate,
		},
		{
			name: "max not above min",
			brackets: []PayeBracket{
				{Min: dec("1000"), Max: decPtr("1000"), Rate: dec("0")},
				{Min: dec("1000"), Rate: dec("0.2")},
			},
			wantErr: ErrBracketsNotSorted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBrackets(tt.brackets)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParsePeriodType(t *testing.T) {
	for _, valid := range []string{"weekly", "fortnightly", "monthly"} {
		pt, err := ParsePeriodType(valid)
		require.NoError(t, err)
		assert.Equal(t, PeriodType(valid), pt)
	}

	_, err := ParsePeriodType("daily")
	assert.ErrorIs(t, err, ErrInvalidPeriodType)
}
