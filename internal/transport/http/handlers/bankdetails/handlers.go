package bankdetailshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/bankdetails"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Service *bankdetails.Service
}

func NewHandler(service *bankdetails.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees/{employeeID}/bank-details", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleAdd)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/{bankDetailID}/set-primary", h.handleSetPrimary)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Delete("/{bankDetailID}", h.handleDelete)
	})
}

// maskedDetail hides the full account number on list responses.
type maskedDetail struct {
	bankdetails.BankDetail
	AccountNumber string `json:"accountNumber"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	details, err := h.Service.List(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"))
	if errors.Is(err, bankdetails.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bank_details_list_failed", "failed to list bank details", middleware.GetRequestID(r.Context()))
		return
	}

	masked := make([]maskedDetail, 0, len(details))
	for _, d := range details {
		masked = append(masked, maskedDetail{BankDetail: d, AccountNumber: d.MaskedAccountNumber()})
	}
	api.Success(w, masked, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		BankName      string `json:"bankName"`
		AccountNumber string `json:"accountNumber"`
		IFSCCode      string `json:"ifscCode"`
		Branch        string `json:"branch"`
		AccountType   string `json:"accountType"`
		IsPrimary     bool   `json:"isPrimary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.Add(r.Context(), user.OrganizationID, bankdetails.BankDetail{
		EmployeeID:    chi.URLParam(r, "employeeID"),
		BankName:      payload.BankName,
		AccountNumber: payload.AccountNumber,
		IFSCCode:      payload.IFSCCode,
		Branch:        payload.Branch,
		AccountType:   payload.AccountType,
		IsPrimary:     payload.IsPrimary,
	})
	switch {
	case errors.Is(err, bankdetails.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, bankdetails.ErrDuplicateAccountNumber):
		api.Fail(w, http.StatusConflict, "duplicate_account_number", "account number already on file for this employee", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, bankdetails.ErrBankNameRequired),
		errors.Is(err, bankdetails.ErrBankNameTooLong),
		errors.Is(err, bankdetails.ErrInvalidAccountNumber),
		errors.Is(err, bankdetails.ErrInvalidIFSC),
		errors.Is(err, bankdetails.ErrAccountTypeRequired),
		errors.Is(err, bankdetails.ErrInvalidAccountType):
		api.Fail(w, http.StatusBadRequest, "invalid_bank_detail", err.Error(), middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "bank_detail_add_failed", "failed to add bank detail", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetPrimary(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.SetPrimary(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "bankDetailID"))
	switch {
	case errors.Is(err, bankdetails.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "bank_detail_not_found", "bank detail not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, bankdetails.ErrWrongEmployee):
		api.Fail(w, http.StatusBadRequest, "wrong_employee", "bank detail belongs to another employee", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, bankdetails.ErrAccountInactive):
		api.Fail(w, http.StatusBadRequest, "account_inactive", "cannot mark an inactive account as primary", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "set_primary_failed", "failed to set primary bank detail", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "bankDetailID")}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.Delete(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "bankDetailID"))
	switch {
	case errors.Is(err, bankdetails.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "bank_detail_not_found", "bank detail not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, bankdetails.ErrWrongEmployee):
		api.Fail(w, http.StatusBadRequest, "wrong_employee", "bank detail belongs to another employee", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "bank_detail_delete_failed", "failed to delete bank detail", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "bankDetailID")}, middleware.GetRequestID(r.Context()))
}
