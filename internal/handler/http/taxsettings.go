package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pacifichr/payroll-backend-go/internal/domain/taxrule"
	"github.com/pacifichr/payroll-backend-go/internal/handler/http/response"
)

type TaxSettingsHandler interface {
	GetCurrent(w http.ResponseWriter, r *http.Request)
	GetVersion(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type taxSettingsHandlerImpl struct {
	settingsService taxrule.SettingsService
}

func NewTaxSettingsHandler(settingsService taxrule.SettingsService) TaxSettingsHandler {
	return &taxSettingsHandlerImpl{settingsService: settingsService}
}

func (h *taxSettingsHandlerImpl) GetCurrent(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetCurrent(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *taxSettingsHandlerImpl) GetVersion(w http.ResponseWriter, r *http.Request) {
	versionStr := chi.URLParam(r, "version")
	version, err := strconv.Atoi(versionStr)
	if err != nil || version < 1 {
		response.BadRequest(w, "Invalid version", nil)
		return
	}

	result, err := h.settingsService.GetVersion(r.Context(), version)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *taxSettingsHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req taxrule.CreateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.settingsService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tax settings version created", result)
}
