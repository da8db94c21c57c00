package http

import (
	"encoding/json"
	"net/http"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Configuration
	GetConfiguration(w http.ResponseWriter, r *http.Request)
	ReplaceConfiguration(w http.ResponseWriter, r *http.Request)

	// Calculation
	CalculateEmployee(w http.ResponseWriter, r *http.Request)
	RunMonth(w http.ResponseWriter, r *http.Request)

	// Results
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	GetPaysheet(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== CONFIGURATION ==========

func (h *payrollHandlerImpl) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetConfiguration(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ReplaceConfiguration(w http.ResponseWriter, r *http.Request) {
	var req payroll.ReplaceConfigurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.ReplaceConfiguration(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Configuration replaced", result)
}

// ========== CALCULATION ==========

func (h *payrollHandlerImpl) CalculateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	month := r.URL.Query().Get("month")

	result, err := h.payrollService.CalculateEmployee(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) RunMonth(w http.ResponseWriter, r *http.Request) {
	var req payroll.RunPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.RunMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== RESULTS ==========

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	month := r.URL.Query().Get("month")

	result, err := h.payrollService.GetPayslip(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	result, err := h.payrollService.ListPayslips(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetPaysheet(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	rows, err := h.payrollService.GetPaysheetRows(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	type paysheetRow struct {
		EmployeeID string         `json:"employee_id"`
		Headers    []string       `json:"headers"`
		Values     map[string]any `json:"values"`
	}
	result := make([]paysheetRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, paysheetRow{
			EmployeeID: row.EmployeeID,
			Headers:    row.Headers,
			Values:     row.Values,
		})
	}

	response.Success(w, result)
}
