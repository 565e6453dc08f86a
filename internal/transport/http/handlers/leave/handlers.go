package leavehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/leave"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Get("/requests/pending", h.handleListPending)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Post("/requests/{requestID}/reject", h.handleReject)
		r.Post("/requests/{requestID}/cancel", h.handleCancel)
	})
	r.Route("/employees/{employeeID}/leave-requests", func(r chi.Router) {
		r.Get("/", h.handleListByEmployee)
		r.Post("/", h.handleCreate)
	})
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	requests, err := h.Service.ListByEmployee(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	requests, err := h.Service.ListPending(r.Context(), user.OrganizationID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list pending leave requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		LeaveType string `json:"leaveType"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		Reason    string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("leaveType", payload.LeaveType, "leave type is required")
	startDate, okStart := v.Date("startDate", payload.StartDate)
	endDate, okEnd := v.Date("endDate", payload.EndDate)
	if okStart && okEnd {
		v.DateOrder("startDate", startDate, "endDate", endDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.Create(r.Context(), user.OrganizationID, leave.Request{
		EmployeeID: chi.URLParam(r, "employeeID"),
		LeaveType:  payload.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     payload.Reason,
	})
	switch {
	case errors.Is(err, leave.ErrInvalidLeaveType):
		api.Fail(w, http.StatusBadRequest, "invalid_leave_type", "unknown leave type", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, leave.ErrEndBeforeStart):
		api.Fail(w, http.StatusBadRequest, "invalid_range", "end date cannot be before start date", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, leave.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, leave.ErrOverlappingRequest):
		api.Fail(w, http.StatusConflict, "overlapping_request", "an overlapping leave request already exists", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "leave_create_failed", "failed to create leave request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Approve)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, run func(ctx context.Context, orgID, requestID, deciderID string) error) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := run(r.Context(), user.OrganizationID, chi.URLParam(r, "requestID"), user.UserID)
	switch {
	case errors.Is(err, leave.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "request_not_found", "leave request not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, leave.ErrNotPending):
		api.Fail(w, http.StatusConflict, "not_pending", "leave request has already been decided", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "leave_decide_failed", "failed to update leave request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "requestID")}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		EmployeeID string `json:"employeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.Cancel(r.Context(), user.OrganizationID, chi.URLParam(r, "requestID"), payload.EmployeeID)
	switch {
	case errors.Is(err, leave.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "request_not_found", "leave request not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, leave.ErrCancelAfterDecide):
		api.Fail(w, http.StatusConflict, "cancel_denied", "only pending requests can be cancelled", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "leave_cancel_failed", "failed to cancel leave request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "requestID")}, middleware.GetRequestID(r.Context()))
}
