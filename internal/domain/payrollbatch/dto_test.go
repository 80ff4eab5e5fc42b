package payrollbatch

import (
	"testing"

	"github.com/pacifichr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBatchRequestValidate(t *testing.T) {
	valid := CreateBatchRequest{DateFrom: "2026-03-02", DateTo: "2026-03-15", PeriodType: "fortnightly"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		req   CreateBatchRequest
		field string
	}{
		{
			name:  "malformed date",
			req:   CreateBatchRequest{DateFrom: "02/03/2026", DateTo: "2026-03-15", PeriodType: "weekly"},
			field: "date_from",
		},
		{
			name:  "inverted range",
			req:   CreateBatchRequest{DateFrom: "2026-03-15", DateTo: "2026-03-02", PeriodType: "weekly"},
			field: "date_to",
		},
		{
			name:  "single day window",
			req:   CreateBatchRequest{DateFrom: "2026-03-02", DateTo: "2026-03-02", PeriodType: "weekly"},
			field: "date_to",
		},
		{
			name:  "unknown period type",
			req:   CreateBatchRequest{DateFrom: "2026-03-02", DateTo: "2026-03-15", PeriodType: "daily"},
			field: "period_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestApproveEmployeesRequestValidate(t *testing.T) {
	valid := ApproveEmployeesRequest{
		PayrollID:   "pr-1",
		EmployeeIDs: []string{"e1", "e2"},
		Amounts:     []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(200)},
	}
	require.NoError(t, valid.Validate())

	t.Run("no employees", func(t *testing.T) {
		req := ApproveEmployeesRequest{PayrollID: "pr-1"}
		var verrs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &verrs)
		assert.Contains(t, verrs.ToMap(), "employee_ids")
	})

	t.Run("length mismatch", func(t *testing.T) {
		req := ApproveEmployeesRequest{
			PayrollID:   "pr-1",
			EmployeeIDs: []string{"e1", "e2"},
			Amounts:     []decimal.Decimal{decimal.NewFromInt(100)},
		}
		var verrs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &verrs)
		assert.Contains(t, verrs.ToMap(), "amounts")
	})

	t.Run("negative amount", func(t *testing.T) {
		req := ApproveEmployeesRequest{
			PayrollID:   "pr-1",
			EmployeeIDs: []string{"e1"},
			Amounts:     []decimal.Decimal{decimal.NewFromInt(-5)},
		}
		var verrs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &verrs)
		assert.Contains(t, verrs.ToMap(), "amounts")
	})
}
