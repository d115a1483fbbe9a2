package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/payroll"
	"github.com/driveline-dms/payroll-backend-go/internal/handler/http/response"
	payrollservice "github.com/driveline-dms/payroll-backend-go/internal/service/payroll"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	GetSchedule(w http.ResponseWriter, r *http.Request)

	RunPayroll(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	ExportRun(w http.ResponseWriter, r *http.Request)

	GetMyPaystubs(w http.ResponseWriter, r *http.Request)
	GetPaystubPDF(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService *payrollservice.PayrollService
}

func NewPayrollHandler(payrollService *payrollservice.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// GetSettings implements PayrollHandler.
func (h *PayrollHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	dealerID, err := dealerIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	settings, err := h.payrollService.GetSettings(r.Context(), dealerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

// UpdateSettings implements PayrollHandler.
func (h *PayrollHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	dealerID, err := dealerIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req payroll.UpdatePaySettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	settings, err := h.payrollService.UpdateSettings(r.Context(), dealerID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay settings updated successfully", settings)
}

// GetSchedule implements PayrollHandler.
func (h *PayrollHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	dealerID, err := dealerIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	schedule, err := h.payrollService.GetSchedule(r.Context(), dealerID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedule)
}

// RunPayroll implements PayrollHandler.
func (h *PayrollHandlerImpl) RunPayroll(w http.ResponseWriter, r *http.Request) {
	dealerID, err := dealerIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req payroll.RunPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RunPayroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.RunPayroll(r.Context(), dealerID, req, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run completed", result)
}

// ListRuns implements PayrollHandler.
func (h *PayrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	dealerID, err := dealerIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.payrollService.ListRecentRuns(r.Context(), dealerID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, runs)
}

// GetRun implements PayrollHandler.
func (h *PayrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	dealerID, err := dealerIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	run, err := h.payrollService.GetRun(r.Context(), runID, dealerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, run)
}

// ExportRun implements PayrollHandler.
func (h *PayrollHandlerImpl) ExportRun(w http.ResponseWriter, r *http.Request) {
	dealerID, err := dealerIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	csvData, err := h.payrollService.ExportRunCSV(r.Context(), runID, dealerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll-run-%s.csv"`, runID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csvData))
}

// GetMyPaystubs implements PayrollHandler.
func (h *PayrollHandlerImpl) GetMyPaystubs(w http.ResponseWriter, r *http.Request) {
	dealerID, err := dealerIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.Forbidden(w, "Employee identity required")
		return
	}

	stubs, err := h.payrollService.ListPaystubsForEmployee(r.Context(), employeeID, dealerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stubs)
}

// GetPaystubPDF implements PayrollHandler.
func (h *PayrollHandlerImpl) GetPaystubPDF(w http.ResponseWriter, r *http.Request) {
	dealerID, err := dealerIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	paystubID := chi.URLParam(r, "id")
	if paystubID == "" {
		response.BadRequest(w, "Paystub ID is required", nil)
		return
	}

	pdf, err := h.payrollService.GetPaystubPDF(r.Context(), paystubID, dealerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="paystub-%s.pdf"`, paystubID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
