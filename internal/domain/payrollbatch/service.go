package payrollbatch

import (
	"context"

	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
)

// Service is the payroll batch processor: batch lifecycle, payslip
// generation and approval tracking. The employer scope comes from the
// request context claims.
type Service interface {
	CreateBatch(ctx context.Context, req CreateBatchRequest) (BatchResponse, error)
	GetBatch(ctx context.Context, payrollID string) (BatchResponse, error)
	ListBatches(ctx context.Context, year int) ([]BatchResponse, error)
	DeleteBatch(ctx context.Context, payrollID string) error

	GeneratePayslips(ctx context.Context, req GeneratePayslipsRequest) ([]payslip.Response, error)
	ApproveEmployees(ctx context.Context, req ApproveEmployeesRequest) (BatchResponse, error)

	GetPayslip(ctx context.Context, employeeID, payrollID string) (payslip.Response, error)
	ListBatchPayslips(ctx context.Context, payrollID string) ([]payslip.Response, error)
}
