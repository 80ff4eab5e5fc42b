package payrollbatch

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines data access for payroll batches.
// Create must be atomic with the overlap check: concurrent creates for the
// same employer and window must not both succeed.
// GetByIDForUpdate and UpdateApproval are meant to run inside one
// transaction; the row lock taken by GetByIDForUpdate serializes concurrent
// approvers so they cannot double-count.
type Repository interface {
	Create(ctx context.Context, batch Batch) (Batch, error)
	GetByID(ctx context.Context, payrollID, employerID string) (Batch, error)
	GetByIDForUpdate(ctx context.Context, payrollID, employerID string) (Batch, error)
	ListByEmployer(ctx context.Context, employerID string, year int) ([]Batch, error)
	UpdateApproval(ctx context.Context, payrollID, employerID string, processed []string, totalAmount decimal.Decimal, status Status) (Batch, error)
	Delete(ctx context.Context, payrollID, employerID string) error
}
