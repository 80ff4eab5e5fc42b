package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pacifichr/payroll-backend-go/internal/domain/payrollbatch"
	"github.com/pacifichr/payroll-backend-go/internal/handler/http/response"
)

type PayrollBatchHandler interface {
	// Batches
	CreateBatch(w http.ResponseWriter, r *http.Request)
	GetBatch(w http.ResponseWriter, r *http.Request)
	ListBatches(w http.ResponseWriter, r *http.Request)
	DeleteBatch(w http.ResponseWriter, r *http.Request)

	// Payslips
	GeneratePayslips(w http.ResponseWriter, r *http.Request)
	ApproveEmployees(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListBatchPayslips(w http.ResponseWriter, r *http.Request)
}

type payrollBatchHandlerImpl struct {
	payrollService payrollbatch.Service
}

func NewPayrollBatchHandler(payrollService payrollbatch.Service) PayrollBatchHandler {
	return &payrollBatchHandlerImpl{payrollService: payrollService}
}

// ========== BATCHES ==========

func (h *payrollBatchHandlerImpl) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req payrollbatch.CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll batch created", result)
}

func (h *payrollBatchHandlerImpl) GetBatch(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	if payrollID == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	result, err := h.payrollService.GetBatch(r.Context(), payrollID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollBatchHandlerImpl) ListBatches(w http.ResponseWriter, r *http.Request) {
	year := 0
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 0 {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = y
	}

	result, err := h.payrollService.ListBatches(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollBatchHandlerImpl) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	if payrollID == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteBatch(r.Context(), payrollID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll batch deleted successfully", nil)
}

// ========== PAYSLIPS ==========

func (h *payrollBatchHandlerImpl) GeneratePayslips(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	if payrollID == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	req := payrollbatch.GeneratePayslipsRequest{}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}
	req.PayrollID = payrollID

	result, err := h.payrollService.GeneratePayslips(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslips generated", result)
}

func (h *payrollBatchHandlerImpl) ApproveEmployees(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	if payrollID == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	var req payrollbatch.ApproveEmployeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.PayrollID = payrollID

	result, err := h.payrollService.ApproveEmployees(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollBatchHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	employeeID := chi.URLParam(r, "employeeId")
	if payrollID == "" || employeeID == "" {
		response.BadRequest(w, "Payroll ID and Employee ID are required", nil)
		return
	}

	result, err := h.payrollService.GetPayslip(r.Context(), employeeID, payrollID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollBatchHandlerImpl) ListBatchPayslips(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	if payrollID == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	result, err := h.payrollService.ListBatchPayslips(r.Context(), payrollID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
