package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pacifichr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/pacifichr/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, env string, payrollHandler PayrollBatchHandler, taxHandler TaxSettingsHandler, reportHandler ReportHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "pacifichr-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/", payrollHandler.ListBatches)
				r.Post("/", payrollHandler.CreateBatch)

				r.Route("/{payrollId}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetBatch)
					r.Delete("/", payrollHandler.DeleteBatch)
					r.Post("/generate", payrollHandler.GeneratePayslips)
					r.Post("/approve", payrollHandler.ApproveEmployees)

					r.Route("/payslips", func(r chi.Router) {
						r.Get("/", payrollHandler.ListBatchPayslips)
						r.Get("/{employeeId}", payrollHandler.GetPayslip)
					})
				})
			})

			r.Route("/tax-settings", func(r chi.Router) {
				r.Get("/", taxHandler.GetCurrent)
				r.Post("/", taxHandler.Create)
				r.Get("/versions/{version}", taxHandler.GetVersion)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/contributions", reportHandler.GenerateSchedule)
			})
		})
	})
	return r
}
