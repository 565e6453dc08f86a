package recruitmenthandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/recruitment"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *recruitment.Service
}

func NewHandler(service *recruitment.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recruitment", func(r chi.Router) {
		r.Get("/postings", h.handleListPostings)
		r.Get("/postings/{postingID}", h.handleGetPosting)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/postings", h.handleCreatePosting)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/postings/{postingID}/close", h.handleClosePosting)
		r.Get("/postings/{postingID}/applications", h.handleListApplications)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/postings/{postingID}/applications", h.handleApply)
		r.Get("/candidates", h.handleListCandidates)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/candidates", h.handleCreateCandidate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/applications/{applicationID}/stage", h.handleAdvanceStage)
		r.Get("/applications/{applicationID}/interviews", h.handleListInterviews)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/applications/{applicationID}/interviews", h.handleScheduleInterview)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/interviews/{interviewID}/complete", h.handleCompleteInterview)
	})
}

func (h *Handler) handleListPostings(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	postings, err := h.Service.ListPostings(r.Context(), user.OrganizationID, r.URL.Query().Get("status"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "postings_list_failed", "failed to list job postings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, postings, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPosting(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	posting, err := h.Service.GetPosting(r.Context(), user.OrganizationID, chi.URLParam(r, "postingID"))
	if errors.Is(err, recruitment.ErrPostingNotFound) {
		api.Fail(w, http.StatusNotFound, "posting_not_found", "job posting not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "posting_get_failed", "failed to load job posting", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, posting, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePosting(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Title          string  `json:"title"`
		Description    string  `json:"description"`
		DepartmentID   *string `json:"departmentId"`
		LocationID     *string `json:"locationId"`
		EmploymentType string  `json:"employmentType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("title", payload.Title, "posting title is required")
	v.Required("employmentType", payload.EmploymentType, "employment type is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreatePosting(r.Context(), recruitment.JobPosting{
		OrganizationID: user.OrganizationID,
		Title:          payload.Title,
		Description:    payload.Description,
		DepartmentID:   payload.DepartmentID,
		LocationID:     payload.LocationID,
		EmploymentType: payload.EmploymentType,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "posting_create_failed", "failed to create job posting", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleClosePosting(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.ClosePosting(r.Context(), user.OrganizationID, chi.URLParam(r, "postingID"))
	if errors.Is(err, recruitment.ErrPostingNotFound) {
		api.Fail(w, http.StatusNotFound, "posting_not_found", "job posting not found or already closed", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "posting_close_failed", "failed to close job posting", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "postingID")}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	candidates, err := h.Service.ListCandidates(r.Context(), user.OrganizationID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "candidates_list_failed", "failed to list candidates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, candidates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		ResumeURL string `json:"resumeUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateCandidate(r.Context(), recruitment.Candidate{
		OrganizationID: user.OrganizationID,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Email:          payload.Email,
		Phone:          payload.Phone,
		ResumeURL:      payload.ResumeURL,
	})
	if errors.Is(err, recruitment.ErrDuplicateEmail) {
		api.Fail(w, http.StatusConflict, "duplicate_email", "a candidate with this email already exists", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "candidate_create_failed", "failed to create candidate", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	applications, err := h.Service.ListApplications(r.Context(), user.OrganizationID, chi.URLParam(r, "postingID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "applications_list_failed", "failed to list applications", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, applications, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		CandidateID string `json:"candidateId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("candidateId", payload.CandidateID, "candidate id is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.Apply(r.Context(), user.OrganizationID, chi.URLParam(r, "postingID"), payload.CandidateID)
	switch {
	case errors.Is(err, recruitment.ErrPostingNotFound):
		api.Fail(w, http.StatusNotFound, "posting_not_found", "job posting not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, recruitment.ErrPostingClosed):
		api.Fail(w, http.StatusConflict, "posting_closed", "job posting is closed", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, recruitment.ErrCandidateNotFound):
		api.Fail(w, http.StatusNotFound, "candidate_not_found", "candidate not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, recruitment.ErrDuplicateApplicant):
		api.Fail(w, http.StatusConflict, "already_applied", "candidate has already applied to this posting", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "apply_failed", "failed to record application", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdvanceStage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Stage string `json:"stage"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.AdvanceStage(r.Context(), user.OrganizationID, chi.URLParam(r, "applicationID"), payload.Stage, payload.Notes)
	switch {
	case errors.Is(err, recruitment.ErrApplicationNotFound):
		api.Fail(w, http.StatusNotFound, "application_not_found", "application not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, recruitment.ErrInvalidStage):
		api.Fail(w, http.StatusBadRequest, "invalid_stage", "unknown application stage", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, recruitment.ErrStageTransition):
		api.Fail(w, http.StatusConflict, "stage_transition_denied", "stage transition not allowed", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "stage_update_failed", "failed to update application stage", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "applicationID")}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	interviews, err := h.Service.ListInterviews(r.Context(), user.OrganizationID, chi.URLParam(r, "applicationID"))
	if errors.Is(err, recruitment.ErrApplicationNotFound) {
		api.Fail(w, http.StatusNotFound, "application_not_found", "application not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "interviews_list_failed", "failed to list interviews", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, interviews, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		InterviewerID *string `json:"interviewerId"`
		ScheduledAt   string  `json:"scheduledAt"`
		Mode          string  `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	scheduledAt, okDate := v.Date("scheduledAt", payload.ScheduledAt)
	if v.Reject(w, middleware.GetRequestID(r.Context())) || !okDate {
		return
	}

	id, err := h.Service.ScheduleInterview(r.Context(), user.OrganizationID, recruitment.Interview{
		ApplicationID: chi.URLParam(r, "applicationID"),
		InterviewerID: payload.InterviewerID,
		ScheduledAt:   scheduledAt,
		Mode:          payload.Mode,
	})
	switch {
	case errors.Is(err, recruitment.ErrApplicationNotFound):
		api.Fail(w, http.StatusNotFound, "application_not_found", "application not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, recruitment.ErrNotInInterviewStage):
		api.Fail(w, http.StatusConflict, "not_in_interview_stage", "application is not in the interview stage", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "interview_schedule_failed", "failed to schedule interview", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCompleteInterview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.CompleteInterview(r.Context(), user.OrganizationID, chi.URLParam(r, "interviewID"), payload.Feedback)
	if errors.Is(err, recruitment.ErrInterviewNotFound) {
		api.Fail(w, http.StatusNotFound, "interview_not_found", "interview not found or not scheduled", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "interview_complete_failed", "failed to complete interview", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "interviewID")}, middleware.GetRequestID(r.Context()))
}
