package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/{employeeID}/terminate", h.handleTerminate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/{employeeID}/reactivate", h.handleReactivate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/{employeeID}/confirm-probation", h.handleConfirmProbation)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{employeeID}", h.handleDelete)
	})
}

type employeePayload struct {
	EmployeeNumber string   `json:"employeeNumber"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Status         string   `json:"status"`
	EmploymentType string   `json:"employmentType"`
	JobTitle       string   `json:"jobTitle"`
	JobLevel       string   `json:"jobLevel"`
	Salary         *float64 `json:"salary"`
	Currency       string   `json:"currency"`
	HireDate       string   `json:"hireDate"`
	ProbationEnd   string   `json:"probationEndDate"`
	ManagerID      string   `json:"managerId"`
	DepartmentID   string   `json:"departmentId"`
	LocationID     string   `json:"locationId"`
}

func (p employeePayload) validate(w http.ResponseWriter, requestID string) (employee.Employee, bool) {
	v := shared.NewValidator()
	v.Required("employeeNumber", p.EmployeeNumber, "employee number is required")
	v.Required("firstName", p.FirstName, "first name is required")
	v.Required("lastName", p.LastName, "last name is required")
	v.Required("email", p.Email, "email is required")
	v.Enum("status", p.Status, employee.Statuses, "unknown employee status")
	v.Enum("employmentType", p.EmploymentType, employee.EmploymentTypes, "unknown employment type")
	hireDate := v.OptionalDate("hireDate", p.HireDate)
	probationEnd := v.OptionalDate("probationEndDate", p.ProbationEnd)
	if v.Reject(w, requestID) {
		return employee.Employee{}, false
	}

	return employee.Employee{
		EmployeeNumber: p.EmployeeNumber,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		Status:         p.Status,
		EmploymentType: p.EmploymentType,
		JobTitle:       p.JobTitle,
		JobLevel:       p.JobLevel,
		Salary:         p.Salary,
		Currency:       p.Currency,
		HireDate:       hireDate,
		ProbationEnd:   probationEnd,
		ManagerID:      p.ManagerID,
		DepartmentID:   p.DepartmentID,
		LocationID:     p.LocationID,
	}, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	page := shared.ParsePagination(r, 50, 200)
	employees, err := h.Service.List(r.Context(), user.OrganizationID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	emp, err := h.Service.Get(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	emp, ok := payload.validate(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}
	emp.OrganizationID = user.OrganizationID

	id, err := h.Service.Create(r.Context(), emp)
	switch {
	case errors.Is(err, employee.ErrDuplicateEmployeeNumber):
		api.Fail(w, http.StatusConflict, "duplicate_employee_number", "employee number already in use", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, employee.ErrManagerNotFound):
		api.Fail(w, http.StatusBadRequest, "manager_not_found", "manager does not exist in this organization", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	emp, ok := payload.validate(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}

	err := h.Service.Update(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"), emp)
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, employee.ErrManagerNotFound):
		api.Fail(w, http.StatusBadRequest, "manager_not_found", "manager does not exist in this organization", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, employee.ErrInvalidStatusTransition):
		api.Fail(w, http.StatusBadRequest, "invalid_status_transition", "status transition not allowed", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "employeeID")}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTerminate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		TerminationDate string `json:"terminationDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	terminationDate := time.Now()
	if payload.TerminationDate != "" {
		parsed, err := shared.ParseDate(payload.TerminationDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "terminationDate must be a valid date", middleware.GetRequestID(r.Context()))
			return
		}
		terminationDate = parsed
	}

	h.transition(w, r, func() error {
		return h.Service.Terminate(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"), terminationDate)
	})
}

func (h *Handler) handleReactivate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	h.transition(w, r, func() error {
		return h.Service.Reactivate(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"))
	})
}

func (h *Handler) handleConfirmProbation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	h.transition(w, r, func() error {
		return h.Service.ConfirmProbation(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"))
	})
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, run func() error) {
	err := run()
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, employee.ErrInvalidStatusTransition):
		api.Fail(w, http.StatusBadRequest, "invalid_status_transition", "status transition not allowed", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "employee_transition_failed", "failed to change employee status", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, map[string]string{"id": chi.URLParam(r, "employeeID")}, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.Delete(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"))
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, employee.ErrHasDirectReports):
		api.Fail(w, http.StatusConflict, "has_direct_reports", "reassign direct reports before deleting this employee", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "employeeID")}, middleware.GetRequestID(r.Context()))
}
