package main

import (
	"fmt"
	"net/http"

	"github.com/pacifichr/payroll-backend-go/internal/config"
	appHTTP "github.com/pacifichr/payroll-backend-go/internal/handler/http"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/database"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/jwt"
	"github.com/pacifichr/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/pacifichr/payroll-backend-go/internal/service/payroll"
	reportService "github.com/pacifichr/payroll-backend-go/internal/service/report"
	taxService "github.com/pacifichr/payroll-backend-go/internal/service/taxsettings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	batchRepo := postgresql.NewPayrollBatchRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	workRecordRepo := postgresql.NewWorkRecordRepository(db)
	taxSettingsRepo := postgresql.NewTaxSettingsRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewPayrollService(db, batchRepo, payslipRepo, employeeRepo, workRecordRepo, taxSettingsRepo)
	taxSvc := taxService.NewSettingsService(db, taxSettingsRepo)
	reportSvc := reportService.NewReportService(db, payslipRepo, employeeRepo)

	payrollHandler := appHTTP.NewPayrollBatchHandler(payrollSvc)
	taxHandler := appHTTP.NewTaxSettingsHandler(taxSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(JWTService, cfg.App.Env, payrollHandler, taxHandler, reportHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
