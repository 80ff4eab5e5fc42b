package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pacifichr/payroll-backend-go/internal/domain/payrollbatch"
	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
	"github.com/pacifichr/payroll-backend-go/internal/domain/report"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPayrollService struct{}

func (stubPayrollService) CreateBatch(context.Context, payrollbatch.CreateBatchRequest) (payrollbatch.BatchResponse, error) {
	return payrollbatch.BatchResponse{}, nil
}
func (stubPayrollService) GetBatch(context.Context, string) (payrollbatch.BatchResponse, error) {
	return payrollbatch.BatchResponse{}, nil
}
func (stubPayrollService) ListBatches(context.Context, int) ([]payrollbatch.BatchResponse, error) {
	return []payrollbatch.BatchResponse{}, nil
}
func (stubPayrollService) DeleteBatch(context.Context, string) error { return nil }
func (stubPayrollService) GeneratePayslips(context.Context, payrollbatch.GeneratePayslipsRequest) ([]payslip.Response, error) {
	return nil, nil
}
func (stubPayrollService) ApproveEmployees(context.Context, payrollbatch.ApproveEmployeesRequest) (payrollbatch.BatchResponse, error) {
	return payrollbatch.BatchResponse{}, nil
}
func (stubPayrollService) GetPayslip(context.Context, string, string) (payslip.Response, error) {
	return payslip.Response{}, nil
}
func (stubPayrollService) ListBatchPayslips(context.Context, string) ([]payslip.Response, error) {
	return nil, nil
}

type stubTaxService struct{}

func (stubTaxService) GetCurrent(context.Context) (taxrule.SettingsResponse, error) {
	return taxrule.SettingsResponse{}, nil
}
func (stubTaxService) GetVersion(context.Context, int) (taxrule.SettingsResponse, error) {
	return taxrule.SettingsResponse{}, nil
}
func (stubTaxService) Create(context.Context, taxrule.CreateSettingsRequest) (taxrule.SettingsResponse, error) {
	return taxrule.SettingsResponse{}, nil
}

type stubReportService struct{}

func (stubReportService) Generate(context.Context, report.GenerateRequest) (report.Generated, error) {
	return report.Generated{
		FileName:    "tax-schedule.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte("workbook"),
	}, nil
}

func testRouter(t *testing.T) (jwt.Service, http.Handler) {
	t.Helper()
	jwtSvc := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	router := NewRouter(
		jwtSvc,
		"test",
		NewPayrollBatchHandler(stubPayrollService{}),
		NewTaxSettingsHandler(stubTaxService{}),
		NewReportHandler(stubReportService{}),
	)
	return jwtSvc, router
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	_, router := testRouter(t)

	for _, path := range []string{
		"/api/v1/payrolls",
		"/api/v1/tax-settings",
		"/api/v1/reports/contributions",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}

func TestRouter_AcceptsAccessToken(t *testing.T) {
	jwtSvc, router := testRouter(t)

	token, _, err := jwtSvc.GenerateAccessToken("user-1", "employer-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payrolls", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "data": []}`, rec.Body.String())
}

func TestRouter_ReportDownload(t *testing.T) {
	jwtSvc, router := testRouter(t)

	token, _, err := jwtSvc.GenerateAccessToken("user-1", "employer-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/contributions?kind=tax", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="tax-schedule.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "workbook", rec.Body.String())
}
