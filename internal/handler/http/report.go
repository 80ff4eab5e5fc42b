package http

import (
	"net/http"

	"github.com/pacifichr/payroll-backend-go/internal/domain/report"
	"github.com/pacifichr/payroll-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GenerateSchedule(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// GenerateSchedule streams a statutory contribution schedule as an xlsx
// attachment. Parameters come from the query string so the link can be
// opened directly from a browser.
func (h *reportHandlerImpl) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	req := report.GenerateRequest{
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		PeriodType: r.URL.Query().Get("period_type"),
		Kind:       r.URL.Query().Get("kind"),
	}

	result, err := h.reportService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, result.FileName, result.ContentType, result.Content)
}
