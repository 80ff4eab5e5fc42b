package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pacifichr/payroll-backend-go/internal/domain/employee"
	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
	"github.com/pacifichr/payroll-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubPayslipRepo struct {
	payslips []payslip.Payslip
}

func (s *stubPayslipRepo) Create(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	return p, nil
}

func (s *stubPayslipRepo) GetByEmployeePayroll(ctx context.Context, employeeID, payrollID, employerID string) (payslip.Payslip, error) {
	return payslip.Payslip{}, payslip.ErrPayslipNotFound
}

func (s *stubPayslipRepo) ListByPayrollID(ctx context.Context, payrollID, employerID string) ([]payslip.Payslip, error) {
	return nil, nil
}

func (s *stubPayslipRepo) ListByEmployerPeriod(ctx context.Context, employerID string, from, to time.Time) ([]payslip.Payslip, error) {
	return s.payslips, nil
}

func (s *stubPayslipRepo) CountByPayrollID(ctx context.Context, payrollID, employerID string) (int, error) {
	return len(s.payslips), nil
}

type stubEmployeeRepo struct {
	employees []employee.Employee
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id, employerID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) GetByEmployerID(ctx context.Context, employerID string) ([]employee.Employee, error) {
	return s.employees, nil
}

func (s *stubEmployeeRepo) GetActiveByEmployerID(ctx context.Context, employerID string) ([]employee.Employee, error) {
	var active []employee.Employee
	for _, e := range s.employees {
		if e.IsActive {
			active = append(active, e)
		}
	}
	return active, nil
}

func (s *stubEmployeeRepo) GetPayLines(ctx context.Context, employeeID, employerID string) ([]employee.PayLine, error) {
	return nil, nil
}

func authedContext(t *testing.T, employerID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"employer_id": employerID,
		"user_id":     "test-user",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// A payslip stays on the schedule after its employee is deactivated, and
// the code column must still carry the master-record code.
func TestGenerate_DeactivatedEmployeeKeepsCode(t *testing.T) {
	payslipRepo := &stubPayslipRepo{payslips: []payslip.Payslip{
		slip("e1", "Aiga Faleolo", 10, 3, "50", "0", "0"),
		slip("e2", "Sina Tuilagi", 10, 3, "80", "0", "0"),
	}}
	empRepo := &stubEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", EmployeeCode: "EMP-001", FullName: "Aiga Faleolo", IsActive: true},
		{ID: "e2", EmployeeCode: "EMP-002", FullName: "Sina Tuilagi", IsActive: false},
	}}
	svc := NewReportService(nil, payslipRepo, empRepo)

	generated, err := svc.Generate(authedContext(t, "emp-co"), report.GenerateRequest{
		StartDate:  "2026-03-01",
		EndDate:    "2026-03-31",
		PeriodType: "weekly",
		Kind:       "tax",
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(generated.Content))
	require.NoError(t, err)
	defer f.Close()
	sheet := f.GetSheetName(0)

	// Rows are ordered by employee name; data starts on row 5.
	code1, err := f.GetCellValue(sheet, "A5")
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", code1)

	code2, err := f.GetCellValue(sheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, "EMP-002", code2)
}
