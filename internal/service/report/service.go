package report

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pacifichr/payroll-backend-go/internal/domain/employee"
	"github.com/pacifichr/payroll-backend-go/internal/domain/payslip"
	"github.com/pacifichr/payroll-backend-go/internal/domain/report"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/database"
)

type ReportServiceImpl struct {
	db          *database.DB
	payslipRepo payslip.Repository
	empRepo     employee.Repository
}

func NewReportService(db *database.DB, payslipRepo payslip.Repository, empRepo employee.Repository) report.ReportService {
	return &ReportServiceImpl{db: db, payslipRepo: payslipRepo, empRepo: empRepo}
}

func employerFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employerID, ok := claims["employer_id"].(string)
	if !ok || employerID == "" {
		return "", fmt.Errorf("employer_id claim is missing or invalid")
	}

	return employerID, nil
}

// Generate builds one statutory schedule from the payslips stored inside
// the requested window. Purely derived: nothing is written, so concurrent
// exports and concurrent payroll runs never conflict.
func (s *ReportServiceImpl) Generate(ctx context.Context, req report.GenerateRequest) (report.Generated, error) {
	if err := req.Validate(); err != nil {
		return report.Generated{}, err
	}

	employerID, err := employerFromContext(ctx)
	if err != nil {
		return report.Generated{}, err
	}

	from, _ := time.Parse("2006-01-02", req.StartDate)
	to, _ := time.Parse("2006-01-02", req.EndDate)
	periodType, _ := taxrule.ParsePeriodType(req.PeriodType)
	kind, _ := report.ParseKind(req.Kind)

	qctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	payslips, err := s.payslipRepo.ListByEmployerPeriod(qctx, employerID, from, to)
	if err != nil {
		return report.Generated{}, err
	}
	if len(payslips) == 0 {
		return report.Generated{}, report.ErrNoPayslipsInRange
	}

	rows, slots := Aggregate(payslips, periodType, kind)

	// Employee codes live on the master record, not the payslip snapshot.
	// The lookup is not filtered to active employees: someone paid inside
	// the window and deactivated since still needs a code on the schedule.
	employees, err := s.empRepo.GetByEmployerID(qctx, employerID)
	if err != nil {
		return report.Generated{}, fmt.Errorf("failed to get employees: %w", err)
	}
	codes := make(map[string]string, len(employees))
	for _, emp := range employees {
		codes[emp.ID] = emp.EmployeeCode
	}
	for i := range rows {
		rows[i].EmployeeCode = codes[rows[i].EmployeeID]
	}

	content, err := renderWorkbook(rows, slots, periodType, kind, from, to)
	if err != nil {
		return report.Generated{}, err
	}

	return report.Generated{
		FileName:    fmt.Sprintf("%s-schedule-%s-%s.xlsx", req.Kind, req.StartDate, req.EndDate),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}
