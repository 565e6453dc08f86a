package compliancehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/compliance"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service   *compliance.Service
	ReportDir string
}

func NewHandler(service *compliance.Service, reportDir string) *Handler {
	return &Handler{Service: service, ReportDir: reportDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/compliance", func(r chi.Router) {
		r.Get("/rules", h.handleListRules)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/rules", h.handleCreateRule)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/rules/{ruleID}/activate", h.handleSetRuleActive(true))
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/rules/{ruleID}/deactivate", h.handleSetRuleActive(false))
		r.Get("/checks", h.handleListChecks)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/checks/run", h.handleRunChecks)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/checks/run/{employeeID}", h.handleRunChecksForEmployee)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/report", h.handleReport)
	})
}

func (h *Handler) handleListRules(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	rules, err := h.Service.ListRules(r.Context(), user.OrganizationID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rules_list_failed", "failed to list compliance rules", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rules, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Severity string `json:"severity"`
		IsActive bool   `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("code", payload.Code, "rule code is required")
	v.Required("name", payload.Name, "rule name is required")
	v.Enum("severity", payload.Severity, []string{compliance.SeverityLow, compliance.SeverityMedium, compliance.SeverityHigh}, "unknown severity")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateRule(r.Context(), compliance.Rule{
		OrganizationID: user.OrganizationID,
		Code:           payload.Code,
		Name:           payload.Name,
		Category:       payload.Category,
		Severity:       payload.Severity,
		IsActive:       payload.IsActive,
	})
	if errors.Is(err, compliance.ErrDuplicateCode) {
		api.Fail(w, http.StatusConflict, "duplicate_code", "rule code already in use", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rule_create_failed", "failed to create compliance rule", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetRuleActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUser(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
			return
		}

		err := h.Service.SetRuleActive(r.Context(), user.OrganizationID, chi.URLParam(r, "ruleID"), active)
		if errors.Is(err, compliance.ErrRuleNotFound) {
			api.Fail(w, http.StatusNotFound, "rule_not_found", "compliance rule not found", middleware.GetRequestID(r.Context()))
			return
		}
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "rule_update_failed", "failed to update compliance rule", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, map[string]string{"id": chi.URLParam(r, "ruleID")}, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleListChecks(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := r.URL.Query().Get("employeeId")
	failedOnly := r.URL.Query().Get("failed") == "true"
	checks, err := h.Service.ListChecks(r.Context(), user.OrganizationID, employeeID, failedOnly)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "checks_list_failed", "failed to list compliance checks", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, checks, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRunChecks(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	passed, failed, err := h.Service.RunChecks(r.Context(), user.OrganizationID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "checks_run_failed", "failed to run compliance checks", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int{"passed": passed, "failed": failed}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRunChecksForEmployee(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	checks, err := h.Service.RunChecksForEmployee(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"))
	if errors.Is(err, compliance.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "checks_run_failed", "failed to run compliance checks", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, checks, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	path, err := h.Service.GenerateReportPDF(r.Context(), user.OrganizationID, h.ReportDir)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate compliance report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"path": path}, middleware.GetRequestID(r.Context()))
}
