package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pacifichr/payroll-backend-go/internal/domain/employee"
	"github.com/pacifichr/payroll-backend-go/internal/domain/payrollbatch"
	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/database"
	"github.com/pacifichr/payroll-backend-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	db          *database.DB
	batchRepo   payrollbatch.Repository
	payslipRepo payslip.Repository
	empRepo     employee.Repository
	workRepo    employee.WorkRecordRepository
	taxRepo     taxrule.SettingsRepository
}

func NewPayrollService(
	db *database.DB,
	batchRepo payrollbatch.Repository,
	payslipRepo payslip.Repository,
	empRepo employee.Repository,
	workRepo employee.WorkRecordRepository,
	taxRepo taxrule.SettingsRepository,
) payrollbatch.Service {
	return &PayrollServiceImpl{
		db:          db,
		batchRepo:   batchRepo,
		payslipRepo: payslipRepo,
		empRepo:     empRepo,
		workRepo:    workRepo,
		taxRepo:     taxRepo,
	}
}

// Helper to get employer_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (employerID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employerID, ok := claims["employer_id"].(string)
	if !ok || employerID == "" {
		return "", "", fmt.Errorf("employer_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return employerID, userID, nil
}

// ========== BATCH LIFECYCLE ==========

func (s *PayrollServiceImpl) CreateBatch(ctx context.Context, req payrollbatch.CreateBatchRequest) (payrollbatch.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return payrollbatch.BatchResponse{}, err
	}

	employerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payrollbatch.BatchResponse{}, err
	}

	dateFrom, _ := time.Parse("2006-01-02", req.DateFrom)
	dateTo, _ := time.Parse("2006-01-02", req.DateTo)
	periodType, _ := taxrule.ParsePeriodType(req.PeriodType)

	batch := payrollbatch.Batch{
		PayrollID:  uuid.NewString(),
		EmployerID: employerID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Year:       dateFrom.Year(),
		MonthNo:    int(dateFrom.Month()),
		WeekNo:     WeekOfYear(dateFrom),
		PeriodType: periodType,
	}

	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	created, err := s.batchRepo.Create(ctx, batch)
	if err != nil {
		return payrollbatch.BatchResponse{}, err
	}

	return payrollbatch.ToResponse(created), nil
}

func (s *PayrollServiceImpl) GetBatch(ctx context.Context, payrollID string) (payrollbatch.BatchResponse, error) {
	employerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payrollbatch.BatchResponse{}, err
	}

	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	batch, err := s.batchRepo.GetByID(ctx, payrollID, employerID)
	if err != nil {
		return payrollbatch.BatchResponse{}, err
	}

	return payrollbatch.ToResponse(batch), nil
}

func (s *PayrollServiceImpl) ListBatches(ctx context.Context, year int) ([]payrollbatch.BatchResponse, error) {
	employerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	batches, err := s.batchRepo.ListByEmployer(ctx, employerID, year)
	if err != nil {
		return nil, err
	}

	return payrollbatch.ToResponses(batches), nil
}

// DeleteBatch hard-deletes the batch row. Payslips already generated under
// it are kept; they remain addressable by (employee_id, payroll_id).
func (s *PayrollServiceImpl) DeleteBatch(ctx context.Context, payrollID string) error {
	employerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	return s.batchRepo.Delete(ctx, payrollID, employerID)
}

// ========== PAYSLIP GENERATION ==========

func (s *PayrollServiceImpl) GeneratePayslips(ctx context.Context, req payrollbatch.GeneratePayslipsRequest) ([]payslip.Response, error) {
	employerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Generation is one long run over many statements. Each store call gets
	// its own query timeout instead of one bound around the whole run, so a
	// large employer does not trip the per-query limit.
	qctx, cancel := database.WithQueryTimeout(ctx)
	batch, err := s.batchRepo.GetByID(qctx, req.PayrollID, employerID)
	cancel()
	if err != nil {
		return nil, err
	}

	qctx, cancel = database.WithQueryTimeout(ctx)
	var settings taxrule.Settings
	if req.TaxVersion != nil {
		settings, err = s.taxRepo.GetByVersion(qctx, employerID, *req.TaxVersion)
	} else {
		settings, err = s.taxRepo.GetCurrent(qctx, employerID)
	}
	cancel()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	period, err := NewPayPeriod(batch.DateFrom, batch.DateTo, batch.PeriodType, settings)
	if err != nil {
		return nil, err
	}
	mult, err := settings.PayMultiplier(batch.PeriodType)
	if err != nil {
		return nil, err
	}

	qctx, cancel = database.WithQueryTimeout(ctx)
	employees, err := s.empRepo.GetActiveByEmployerID(qctx, employerID)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	if len(req.EmployeeIDs) > 0 {
		wanted := make(map[string]bool, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			wanted[id] = true
		}
		var filtered []employee.Employee
		for _, emp := range employees {
			if wanted[emp.ID] {
				filtered = append(filtered, emp)
			}
		}
		employees = filtered
	}

	var employeeIDs []string
	for _, emp := range employees {
		employeeIDs = append(employeeIDs, emp.ID)
	}
	qctx, cancel = database.WithQueryTimeout(ctx)
	summaries, err := s.workRepo.GetWorkSummary(qctx, employerID, batch.DateFrom, batch.DateTo, employeeIDs)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to get work summary: %w", err)
	}
	workMap := make(map[string]employee.WorkSummary, len(summaries))
	for _, w := range summaries {
		workMap[w.EmployeeID] = w
	}

	var created []payslip.Payslip
	for _, emp := range employees {
		qctx, cancel = database.WithQueryTimeout(ctx)
		lines, err := s.empRepo.GetPayLines(qctx, emp.ID, employerID)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to get pay lines for employee %s: %w", emp.ID, err)
		}

		var allowances, deductions []payslip.Line
		for _, l := range lines {
			line := payslip.Line{ID: l.Code, Amount: l.Amount}
			if l.Kind == employee.PayLineAllowance {
				allowances = append(allowances, line)
			} else {
				deductions = append(deductions, line)
			}
		}

		work := workMap[emp.ID]
		rate := payslip.RateInfo{
			PayType:    emp.PayType,
			HourlyRate: emp.HourlyRate,
		}
		if emp.PayType == payslip.PayTypeSalary {
			rate.PeriodSalary = emp.WeeklySalary.Mul(mult)
			if period.ExpectedBaseHours.IsPositive() {
				rate.HourlyRate = rate.PeriodSalary.Div(period.ExpectedBaseHours).Round(2)
			}
		}
		rate.OvertimeRate = rate.HourlyRate.Mul(settings.OvertimeMultiplier).Round(2)

		breakdown, err := Compute(ComputeInput{
			Period:     period,
			Work:       payslip.WorkRecord{TotalWorkHours: work.TotalWorkHours, OvertimeHours: work.OvertimeHours},
			Rate:       rate,
			Allowances: allowances,
			Deductions: deductions,
			Settings:   settings,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to compute payslip for employee %s: %w", emp.ID, err)
		}

		slip := payslip.Payslip{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			EmployerID:   employerID,
			PayrollID:    batch.PayrollID,
			Period:       period,
			Work:         payslip.WorkRecord{TotalWorkHours: work.TotalWorkHours, OvertimeHours: work.OvertimeHours},
			Rate:         rate,
			Allowances:   allowances,
			Deductions:   deductions,
			Breakdown:    breakdown,
			WeekNo:       batch.WeekNo,
			MonthNo:      batch.MonthNo,
			Year:         batch.Year,
			TaxVersion:   settings.Version,
		}

		qctx, cancel = database.WithQueryTimeout(ctx)
		stored, err := s.payslipRepo.Create(qctx, slip)
		cancel()
		if err != nil {
			if errors.Is(err, payslip.ErrPayslipAlreadyExists) {
				continue
			}
			// A failed write is a failed run for this employee; surface it.
			// Payslips already written stay written.
			return nil, fmt.Errorf("failed to create payslip for employee %s: %w", emp.ID, err)
		}
		created = append(created, stored)
	}

	return payslip.ToResponses(created), nil
}

// ========== APPROVAL ==========

// ApproveEmployees adds the requested employees to the processed set and
// increments the batch total, atomically. The whole read-merge-write runs
// in one transaction behind a row lock, so concurrent approvers serialize
// and re-approval is a no-op.
func (s *PayrollServiceImpl) ApproveEmployees(ctx context.Context, req payrollbatch.ApproveEmployeesRequest) (payrollbatch.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return payrollbatch.BatchResponse{}, err
	}

	employerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payrollbatch.BatchResponse{}, err
	}

	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	var approved payrollbatch.Batch
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		batch, err := s.batchRepo.GetByIDForUpdate(txCtx, req.PayrollID, employerID)
		if err != nil {
			return err
		}

		totalPayslips, err := s.payslipRepo.CountByPayrollID(txCtx, req.PayrollID, employerID)
		if err != nil {
			return err
		}
		if totalPayslips == 0 {
			return payrollbatch.ErrBatchNotGenerated
		}

		processed, total, status := batch.ApplyApproval(req.EmployeeIDs, req.Amounts, totalPayslips)

		approved, err = s.batchRepo.UpdateApproval(txCtx, req.PayrollID, employerID, processed, total, status)
		return err
	})
	if err != nil {
		return payrollbatch.BatchResponse{}, err
	}

	return payrollbatch.ToResponse(approved), nil
}

// ========== PAYSLIP QUERIES ==========

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, employeeID, payrollID string) (payslip.Response, error) {
	employerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payslip.Response{}, err
	}

	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	p, err := s.payslipRepo.GetByEmployeePayroll(ctx, employeeID, payrollID, employerID)
	if err != nil {
		return payslip.Response{}, err
	}

	return payslip.ToResponse(p), nil
}

func (s *PayrollServiceImpl) ListBatchPayslips(ctx context.Context, payrollID string) ([]payslip.Response, error) {
	employerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	payslips, err := s.payslipRepo.ListByPayrollID(ctx, payrollID, employerID)
	if err != nil {
		return nil, err
	}

	return payslip.ToResponses(payslips), nil
}
