package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/timeoff"
	"github.com/driveline-dms/payroll-backend-go/internal/handler/http/response"
	timeoffservice "github.com/driveline-dms/payroll-backend-go/internal/service/timeoff"
	"github.com/go-chi/chi/v5"
)

type TimeOffHandler interface {
	SubmitRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	DecideRequest(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)
}

type TimeOffHandlerImpl struct {
	timeoffService *timeoffservice.TimeOffService
}

func NewTimeOffHandler(timeoffService *timeoffservice.TimeOffService) TimeOffHandler {
	return &TimeOffHandlerImpl{timeoffService: timeoffService}
}

// SubmitRequest implements TimeOffHandler.
func (h *TimeOffHandlerImpl) SubmitRequest(w http.ResponseWriter, r *http.Request) {
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

	var req timeoff.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.timeoffService.SubmitRequest(r.Context(), dealerID, employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time off request submitted", created)
}

// GetMyRequests implements TimeOffHandler.
func (h *TimeOffHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
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

	requests, err := h.timeoffService.ListForEmployee(r.Context(), employeeID, dealerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListRequests implements TimeOffHandler.
func (h *TimeOffHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	dealerID, err := dealerIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.timeoffService.ListForDealer(r.Context(), dealerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// DecideRequest implements TimeOffHandler.
func (h *TimeOffHandlerImpl) DecideRequest(w http.ResponseWriter, r *http.Request) {
	dealerID, err := dealerIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	deciderID, err := userIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var req timeoff.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	decided, err := h.timeoffService.Decide(r.Context(), dealerID, requestID, deciderID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time off request decided", decided)
}

// GetMyBalance implements TimeOffHandler.
func (h *TimeOffHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
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

	balance, err := h.timeoffService.GetBalance(r.Context(), employeeID, dealerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}
