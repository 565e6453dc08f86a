package historyhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/history"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *history.Service
}

func NewHandler(service *history.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees/{employeeID}/history", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/current", h.handleCurrent)
		r.Get("/effective-at", h.handleEffectiveAt)
		r.Get("/promotions", h.listOf(h.Service.Promotions))
		r.Get("/transfers", h.listOf(h.Service.Transfers))
		r.Get("/salary-revisions", h.listOf(h.Service.SalaryRevisions))
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/joining", h.recordOf((*history.Service).RecordJoining))
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/promotion", h.recordOf((*history.Service).RecordPromotion))
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/transfer", h.recordOf((*history.Service).RecordTransfer))
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/salary-revision", h.recordOf((*history.Service).RecordSalaryRevision))
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/role-change", h.recordOf((*history.Service).RecordRoleChange))
	})
}

type recordPayload struct {
	EffectiveDate string   `json:"effectiveDate"`
	EndDate       string   `json:"endDate"`
	JobTitle      string   `json:"jobTitle"`
	JobLevel      string   `json:"jobLevel"`
	DepartmentID  string   `json:"departmentId"`
	ManagerID     string   `json:"managerId"`
	Salary        *float64 `json:"salary"`
	Currency      string   `json:"currency"`
	ChangeType    string   `json:"changeType"`
	ChangeReason  string   `json:"changeReason"`
}

func (p recordPayload) toRecord(w http.ResponseWriter, requestID, employeeID, changedBy string) (history.Record, bool) {
	v := shared.NewValidator()
	effective, okDate := v.Date("effectiveDate", p.EffectiveDate)
	endDate := v.OptionalDate("endDate", p.EndDate)
	if okDate && endDate != nil {
		v.DateOrder("effectiveDate", effective, "endDate", *endDate)
	}
	if v.Reject(w, requestID) {
		return history.Record{}, false
	}

	return history.Record{
		EmployeeID:    employeeID,
		EffectiveDate: effective,
		EndDate:       endDate,
		JobTitle:      p.JobTitle,
		JobLevel:      p.JobLevel,
		DepartmentID:  p.DepartmentID,
		ManagerID:     p.ManagerID,
		Salary:        p.Salary,
		Currency:      p.Currency,
		ChangeType:    p.ChangeType,
		ChangeReason:  p.ChangeReason,
		ChangedBy:     changedBy,
	}, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var records []history.Record
	var err error
	if changeType := r.URL.Query().Get("changeType"); changeType != "" {
		records, err = h.Service.ListByChangeType(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"), changeType)
	} else {
		records, err = h.Service.ListByEmployee(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"))
	}
	h.respondList(w, r, records, err)
}

func (h *Handler) listOf(list func(ctx context.Context, orgID, employeeID string) ([]history.Record, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUser(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
			return
		}
		records, err := list(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"))
		h.respondList(w, r, records, err)
	}
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, records []history.Record, err error) {
	switch {
	case errors.Is(err, history.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, history.ErrInvalidChangeType):
		api.Fail(w, http.StatusBadRequest, "invalid_change_type", "unknown change type", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "history_list_failed", "failed to list employment history", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, records, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.Current(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"))
	switch {
	case errors.Is(err, history.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, history.ErrNoCurrentRecord):
		api.Fail(w, http.StatusNotFound, "no_current_record", "employee has no current employment record", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "history_current_failed", "failed to load current employment record", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEffectiveAt(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	at, err := shared.ParseDate(r.URL.Query().Get("date"))
	if err != nil || at.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "date query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.EffectiveAt(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"), at)
	switch {
	case errors.Is(err, history.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, history.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "no_record_for_date", "no employment record covers that date", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "history_effective_at_failed", "failed to resolve employment record", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	record, ok := payload.toRecord(w, middleware.GetRequestID(r.Context()), chi.URLParam(r, "employeeID"), user.UserID)
	if !ok {
		return
	}

	id, err := h.Service.Create(r.Context(), user.OrganizationID, record)
	h.respondWrite(w, r, id, err)
}

func (h *Handler) recordOf(record func(s *history.Service, ctx context.Context, orgID string, rec history.Record) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUser(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
			return
		}

		var payload recordPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
			return
		}
		rec, ok := payload.toRecord(w, middleware.GetRequestID(r.Context()), chi.URLParam(r, "employeeID"), user.UserID)
		if !ok {
			return
		}

		id, err := record(h.Service, r.Context(), user.OrganizationID, rec)
		h.respondWrite(w, r, id, err)
	}
}

func (h *Handler) respondWrite(w http.ResponseWriter, r *http.Request, id string, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, history.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	case errors.Is(err, history.ErrOverlappingInterval):
		api.Fail(w, http.StatusConflict, "overlapping_interval", "record overlaps an existing employment interval", requestID)
	case errors.Is(err, history.ErrEndBeforeEffective),
		errors.Is(err, history.ErrBackdatedTransition),
		errors.Is(err, history.ErrEmployeeRequired),
		errors.Is(err, history.ErrEffectiveDateRequired),
		errors.Is(err, history.ErrInvalidChangeType):
		api.Fail(w, http.StatusBadRequest, "invalid_record", err.Error(), requestID)
	case errors.Is(err, history.ErrNoCurrentRecord):
		api.Fail(w, http.StatusConflict, "no_current_record", "employee has no current record to transition from", requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "history_write_failed", "failed to save employment history record", requestID)
	default:
		api.Created(w, map[string]string{"id": id}, requestID)
	}
}
