package traininghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/training"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *training.Service
}

func NewHandler(service *training.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/training/programs", func(r chi.Router) {
		r.Get("/", h.handleListPrograms)
		r.Get("/{programID}", h.handleGetProgram)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreateProgram)
		r.Get("/{programID}/enrollments", h.handleListEnrollments)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/{programID}/enrollments", h.handleEnroll)
	})
	r.Route("/training/enrollments", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/{enrollmentID}/complete", h.handleComplete)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/{enrollmentID}/cancel", h.handleCancel)
	})
}

func (h *Handler) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	programs, err := h.Service.ListPrograms(r.Context(), user.OrganizationID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "programs_list_failed", "failed to list training programs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, programs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	program, err := h.Service.GetProgram(r.Context(), user.OrganizationID, chi.URLParam(r, "programID"))
	if errors.Is(err, training.ErrProgramNotFound) {
		api.Fail(w, http.StatusNotFound, "program_not_found", "training program not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "program_get_failed", "failed to load training program", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, program, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Trainer     string `json:"trainer"`
		Capacity    int    `json:"capacity"`
		StartDate   string `json:"startDate"`
		EndDate     string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "program name is required")
	startDate, okStart := v.Date("startDate", payload.StartDate)
	endDate, okEnd := v.Date("endDate", payload.EndDate)
	if okStart && okEnd {
		v.DateOrder("startDate", startDate, "endDate", endDate)
	}
	if payload.Capacity <= 0 {
		v.Add("capacity", "capacity must be positive")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateProgram(r.Context(), training.Program{
		OrganizationID: user.OrganizationID,
		Name:           payload.Name,
		Description:    payload.Description,
		Trainer:        payload.Trainer,
		Capacity:       payload.Capacity,
		StartDate:      startDate,
		EndDate:        endDate,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "program_create_failed", "failed to create training program", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	enrollments, err := h.Service.ListEnrollments(r.Context(), user.OrganizationID, chi.URLParam(r, "programID"))
	if errors.Is(err, training.ErrProgramNotFound) {
		api.Fail(w, http.StatusNotFound, "program_not_found", "training program not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "enrollments_list_failed", "failed to list enrollments", middleware.GetRequestID(r.Context()))
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
		EmployeeID string `json:"employeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.Enroll(r.Context(), user.OrganizationID, chi.URLParam(r, "programID"), payload.EmployeeID)
	switch {
	case errors.Is(err, training.ErrProgramNotFound):
		api.Fail(w, http.StatusNotFound, "program_not_found", "training program not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, training.ErrProgramEnded):
		api.Fail(w, http.StatusConflict, "program_ended", "training program has already ended", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, training.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, training.ErrAlreadyEnrolled):
		api.Fail(w, http.StatusConflict, "already_enrolled", "employee is already enrolled", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, training.ErrProgramFull):
		api.Fail(w, http.StatusConflict, "program_full", "training program is at capacity", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "enroll_failed", "failed to enroll employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Score *int `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.Complete(r.Context(), user.OrganizationID, chi.URLParam(r, "enrollmentID"), payload.Score)
	if errors.Is(err, training.ErrEnrollmentNotFound) {
		api.Fail(w, http.StatusNotFound, "enrollment_not_found", "enrollment not found or not active", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "enrollment_complete_failed", "failed to complete enrollment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "enrollmentID")}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.Cancel(r.Context(), user.OrganizationID, chi.URLParam(r, "enrollmentID"))
	if errors.Is(err, training.ErrEnrollmentNotFound) {
		api.Fail(w, http.StatusNotFound, "enrollment_not_found", "enrollment not found or not active", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "enrollment_cancel_failed", "failed to cancel enrollment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "enrollmentID")}, middleware.GetRequestID(r.Context()))
}
