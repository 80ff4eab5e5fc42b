package report

import (
	"testing"

	"github.com/pacifichr/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequestValidate(t *testing.T) {
	valid := GenerateRequest{
		StartDate:  "2026-03-01",
		EndDate:    "2026-03-31",
		PeriodType: "weekly",
		Kind:       "providentFund",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		req   GenerateRequest
		field string
	}{
		{
			name:  "bad start date",
			req:   GenerateRequest{StartDate: "March 1", EndDate: "2026-03-31", PeriodType: "weekly", Kind: "tax"},
			field: "start_date",
		},
		{
			name:  "end before start",
			req:   GenerateRequest{StartDate: "2026-03-31", EndDate: "2026-03-01", PeriodType: "weekly", Kind: "tax"},
			field: "end_date",
		},
		{
			name:  "unknown period type",
			req:   GenerateRequest{StartDate: "2026-03-01", EndDate: "2026-03-31", PeriodType: "daily", Kind: "tax"},
			field: "period_type",
		},
		{
			name:  "unknown kind",
			req:   GenerateRequest{StartDate: "2026-03-01", EndDate: "2026-03-31", PeriodType: "weekly", Kind: "vat"},
			field: "kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verrs validator.ValidationErrors
			require.ErrorAs(t, tt.req.Validate(), &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"tax", "providentFund", "accident"} {
		k, err := ParseKind(valid)
		require.NoError(t, err)
		assert.Equal(t, Kind(valid), k)
	}

	_, err := ParseKind("payroll")
	assert.ErrorIs(t, err, ErrInvalidKind)
}
