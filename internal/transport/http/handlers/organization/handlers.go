package organizationhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/organization"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *organization.Service
}

func NewHandler(service *organization.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.Get("/hierarchy", h.handleHierarchy)
		r.Get("/{departmentID}", h.handleGetDepartment)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreateDepartment)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Put("/{departmentID}", h.handleUpdateDepartment)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Delete("/{departmentID}", h.handleDeleteDepartment)
	})
	r.Route("/locations", func(r chi.Router) {
		r.Get("/", h.handleListLocations)
		r.Get("/{locationID}", h.handleGetLocation)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreateLocation)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Delete("/{locationID}", h.handleDeleteLocation)
	})
}

type departmentPayload struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	ParentID  string `json:"parentId"`
	ManagerID string `json:"managerId"`
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	departments, err := h.Service.ListDepartments(r.Context(), user.OrganizationID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "departments_list_failed", "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHierarchy(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	tree, err := h.Service.Hierarchy(r.Context(), user.OrganizationID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hierarchy_failed", "failed to build department hierarchy", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tree, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	dep, err := h.Service.GetDepartment(r.Context(), user.OrganizationID, chi.URLParam(r, "departmentID"))
	if errors.Is(err, organization.ErrDepartmentNotFound) {
		api.Fail(w, http.StatusNotFound, "department_not_found", "department not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_get_failed", "failed to load department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, dep, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "department name is required")
	v.Required("code", payload.Code, "department code is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateDepartment(r.Context(), organization.Department{
		OrganizationID: user.OrganizationID,
		Name:           payload.Name,
		Code:           payload.Code,
		ParentID:       payload.ParentID,
		ManagerID:      payload.ManagerID,
	})
	if h.failDepartmentWrite(w, r, err) {
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "department name is required")
	v.Required("code", payload.Code, "department code is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	err := h.Service.UpdateDepartment(r.Context(), user.OrganizationID, chi.URLParam(r, "departmentID"), organization.Department{
		OrganizationID: user.OrganizationID,
		Name:           payload.Name,
		Code:           payload.Code,
		ParentID:       payload.ParentID,
		ManagerID:      payload.ManagerID,
	})
	if h.failDepartmentWrite(w, r, err) {
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "departmentID")}, middleware.GetRequestID(r.Context()))
}

// failDepartmentWrite maps the department write errors shared by create and
// update. Returns true when a response has been written.
func (h *Handler) failDepartmentWrite(w http.ResponseWriter, r *http.Request, err error) bool {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case err == nil:
		return false
	case errors.Is(err, organization.ErrDepartmentNotFound):
		api.Fail(w, http.StatusNotFound, "department_not_found", "department not found", requestID)
	case errors.Is(err, organization.ErrSelfParent):
		api.Fail(w, http.StatusBadRequest, "self_parent", "a department cannot be its own parent", requestID)
	case errors.Is(err, organization.ErrCircularHierarchy):
		api.Fail(w, http.StatusBadRequest, "circular_hierarchy", "the parent assignment would create a cycle", requestID)
	case errors.Is(err, organization.ErrParentNotFound):
		api.Fail(w, http.StatusBadRequest, "parent_not_found", "parent department does not exist", requestID)
	case errors.Is(err, organization.ErrParentOutsideOrg):
		api.Fail(w, http.StatusBadRequest, "parent_outside_org", "parent department belongs to another organization", requestID)
	case errors.Is(err, organization.ErrManagerNotFound):
		api.Fail(w, http.StatusBadRequest, "manager_not_found", "manager does not exist in this organization", requestID)
	case errors.Is(err, organization.ErrDuplicateCode):
		api.Fail(w, http.StatusConflict, "duplicate_code", "department code already in use", requestID)
	case errors.Is(err, organization.ErrDuplicateName):
		api.Fail(w, http.StatusConflict, "duplicate_name", "department name already in use", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "department_write_failed", "failed to save department", requestID)
	}
	return true
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.DeleteDepartment(r.Context(), user.OrganizationID, chi.URLParam(r, "departmentID"))
	switch {
	case errors.Is(err, organization.ErrDepartmentNotFound):
		api.Fail(w, http.StatusNotFound, "department_not_found", "department not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, organization.ErrHasSubDepartments):
		api.Fail(w, http.StatusConflict, "has_sub_departments", "move or delete sub-departments first", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "department_delete_failed", "failed to delete department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "departmentID")}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListLocations(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	locations, err := h.Service.ListLocations(r.Context(), user.OrganizationID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "locations_list_failed", "failed to list locations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, locations, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	loc, err := h.Service.GetLocation(r.Context(), user.OrganizationID, chi.URLParam(r, "locationID"))
	if errors.Is(err, organization.ErrLocationNotFound) {
		api.Fail(w, http.StatusNotFound, "location_not_found", "location not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "location_get_failed", "failed to load location", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, loc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		City    string `json:"city"`
		Country string `json:"country"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "location name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateLocation(r.Context(), organization.Location{
		OrganizationID: user.OrganizationID,
		Name:           payload.Name,
		Address:        payload.Address,
		City:           payload.City,
		Country:        payload.Country,
	})
	if errors.Is(err, organization.ErrDuplicateLocationName) {
		api.Fail(w, http.StatusConflict, "duplicate_name", "location name already in use", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "location_create_failed", "failed to create location", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.DeleteLocation(r.Context(), user.OrganizationID, chi.URLParam(r, "locationID"))
	if errors.Is(err, organization.ErrLocationNotFound) {
		api.Fail(w, http.StatusNotFound, "location_not_found", "location not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "location_delete_failed", "failed to delete location", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "locationID")}, middleware.GetRequestID(r.Context()))
}
