package benefitshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/benefits"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *benefits.Service
}

func NewHandler(service *benefits.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/benefits", func(r chi.Router) {
		r.Get("/plans", h.handleListPlans)
		r.Get("/plans/{planID}", h.handleGetPlan)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/plans", h.handleCreatePlan)
	})
	r.Route("/employees/{employeeID}/benefits", func(r chi.Router) {
		r.Get("/", h.handleListEnrollments)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleEnroll)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/{enrollmentID}/unenroll", h.handleUnenroll)
	})
}

func (h *Handler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	plans, err := h.Service.ListPlans(r.Context(), user.OrganizationID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "plans_list_failed", "failed to list benefit plans", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, plans, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	plan, err := h.Service.GetPlan(r.Context(), user.OrganizationID, chi.URLParam(r, "planID"))
	if errors.Is(err, benefits.ErrPlanNotFound) {
		api.Fail(w, http.StatusNotFound, "plan_not_found", "benefit plan not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "plan_get_failed", "failed to load benefit plan", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, plan, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Name      string `json:"name"`
		PlanType  string `json:"planType"`
		Provider  string `json:"provider"`
		ValidFrom string `json:"validFrom"`
		ValidTo   string `json:"validTo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "plan name is required")
	v.Required("planType", payload.PlanType, "plan type is required")
	validFrom := v.OptionalDate("validFrom", payload.ValidFrom)
	validTo := v.OptionalDate("validTo", payload.ValidTo)
	if validFrom != nil && validTo != nil {
		v.DateOrder("validFrom", *validFrom, "validTo", *validTo)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreatePlan(r.Context(), benefits.Plan{
		OrganizationID: user.OrganizationID,
		Name:           payload.Name,
		PlanType:       payload.PlanType,
		Provider:       payload.Provider,
		ValidFrom:      validFrom,
		ValidTo:        validTo,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "plan_create_failed", "failed to create benefit plan", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	enrollments, err := h.Service.ListEnrollments(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "enrollments_list_failed", "failed to list benefit enrollments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, enrollments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		PlanID    string `json:"planId"`
		StartDate string `json:"startDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("planId", payload.PlanID, "plan id is required")
	startDate := time.Now()
	if payload.StartDate != "" {
		if parsed, ok := v.Date("startDate", payload.StartDate); ok {
			startDate = parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.Enroll(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"), payload.PlanID, startDate)
	switch {
	case errors.Is(err, benefits.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, benefits.ErrPlanNotFound):
		api.Fail(w, http.StatusNotFound, "plan_not_found", "benefit plan not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, benefits.ErrPlanExpired):
		api.Fail(w, http.StatusBadRequest, "plan_expired", "benefit plan validity has ended", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, benefits.ErrAlreadyEnrolled):
		api.Fail(w, http.StatusConflict, "already_enrolled", "employee already has an active enrollment in this plan", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "enroll_failed", "failed to enroll employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUnenroll(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.Unenroll(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "enrollmentID"), time.Now())
	if errors.Is(err, benefits.ErrEnrollmentClosed) {
		api.Fail(w, http.StatusConflict, "enrollment_not_active", "enrollment is not active", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "unenroll_failed", "failed to end enrollment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "enrollmentID")}, middleware.GetRequestID(r.Context()))
}
