package performancehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/performance"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
}

func NewHandler(service *performance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Get("/cycles", h.handleListCycles)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/cycles", h.handleCreateCycle)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/cycles/{cycleID}/close", h.handleCloseCycle)
		r.Get("/cycles/{cycleID}/reviews", h.handleListReviews)
		r.Get("/cycles/{cycleID}/summary", h.handleSummary)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Post("/cycles/{cycleID}/reviews", h.handleCreateReview)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Post("/reviews/{reviewID}/submit", h.handleSubmitReview)
	})
	r.Route("/employees/{employeeID}/goals", func(r chi.Router) {
		r.Get("/", h.handleListGoals)
		r.Post("/", h.handleCreateGoal)
		r.Post("/{goalID}/progress", h.handleUpdateProgress)
		r.Post("/{goalID}/cancel", h.handleCancelGoal)
	})
}

func (h *Handler) handleListCycles(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	cycles, err := h.Service.ListCycles(r.Context(), user.OrganizationID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycles_list_failed", "failed to list review cycles", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cycles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Name      string `json:"name"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "cycle name is required")
	startDate, okStart := v.Date("startDate", payload.StartDate)
	endDate, okEnd := v.Date("endDate", payload.EndDate)
	if okStart && okEnd {
		v.DateOrder("startDate", startDate, "endDate", endDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateCycle(r.Context(), performance.ReviewCycle{
		OrganizationID: user.OrganizationID,
		Name:           payload.Name,
		StartDate:      startDate,
		EndDate:        endDate,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_create_failed", "failed to create review cycle", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCloseCycle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.CloseCycle(r.Context(), user.OrganizationID, chi.URLParam(r, "cycleID"))
	if errors.Is(err, performance.ErrCycleNotFound) {
		api.Fail(w, http.StatusNotFound, "cycle_not_found", "review cycle not found or already closed", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_close_failed", "failed to close review cycle", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "cycleID")}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	reviews, err := h.Service.ListReviews(r.Context(), user.OrganizationID, chi.URLParam(r, "cycleID"))
	if errors.Is(err, performance.ErrCycleNotFound) {
		api.Fail(w, http.StatusNotFound, "cycle_not_found", "review cycle not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "reviews_list_failed", "failed to list performance reviews", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, reviews, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	summary, err := h.Service.Summary(r.Context(), user.OrganizationID, chi.URLParam(r, "cycleID"))
	if errors.Is(err, performance.ErrCycleNotFound) {
		api.Fail(w, http.StatusNotFound, "cycle_not_found", "review cycle not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to build cycle summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		EmployeeID string  `json:"employeeId"`
		ReviewerID *string `json:"reviewerId"`
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

	id, err := h.Service.CreateReview(r.Context(), user.OrganizationID, performance.Review{
		CycleID:    chi.URLParam(r, "cycleID"),
		EmployeeID: payload.EmployeeID,
		ReviewerID: payload.ReviewerID,
	})
	switch {
	case errors.Is(err, performance.ErrCycleNotFound):
		api.Fail(w, http.StatusNotFound, "cycle_not_found", "review cycle not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, performance.ErrCycleClosed):
		api.Fail(w, http.StatusConflict, "cycle_closed", "review cycle is closed", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, performance.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, performance.ErrDuplicateReview):
		api.Fail(w, http.StatusConflict, "duplicate_review", "employee already has a review in this cycle", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "review_create_failed", "failed to create performance review", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Rating   int    `json:"rating"`
		Comments string `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.SubmitReview(r.Context(), user.OrganizationID, chi.URLParam(r, "reviewID"), payload.Rating, payload.Comments)
	switch {
	case errors.Is(err, performance.ErrInvalidRating):
		api.Fail(w, http.StatusBadRequest, "invalid_rating", "rating must be between 1 and 5", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, performance.ErrReviewNotFound):
		api.Fail(w, http.StatusNotFound, "review_not_found", "performance review not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, performance.ErrReviewSubmitted):
		api.Fail(w, http.StatusConflict, "review_submitted", "review has already been submitted", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "review_submit_failed", "failed to submit performance review", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "reviewID")}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	goals, err := h.Service.ListGoals(r.Context(), user.OrganizationID, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goals_list_failed", "failed to list goals", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, goals, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		CycleID     *string `json:"cycleId"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		DueDate     string  `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("title", payload.Title, "goal title is required")
	dueDate := v.OptionalDate("dueDate", payload.DueDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateGoal(r.Context(), user.OrganizationID, performance.Goal{
		EmployeeID:  chi.URLParam(r, "employeeID"),
		CycleID:     payload.CycleID,
		Title:       payload.Title,
		Description: payload.Description,
		DueDate:     dueDate,
	})
	if errors.Is(err, performance.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_create_failed", "failed to create goal", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Progress int `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.UpdateGoalProgress(r.Context(), user.OrganizationID, chi.URLParam(r, "goalID"), payload.Progress)
	switch {
	case errors.Is(err, performance.ErrInvalidProgress):
		api.Fail(w, http.StatusBadRequest, "invalid_progress", "progress must be between 0 and 100", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, performance.ErrGoalNotFound):
		api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found or cancelled", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "goal_update_failed", "failed to update goal progress", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "goalID")}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancelGoal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.CancelGoal(r.Context(), user.OrganizationID, chi.URLParam(r, "goalID"))
	if errors.Is(err, performance.ErrGoalNotFound) {
		api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found or already finished", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_cancel_failed", "failed to cancel goal", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "goalID")}, middleware.GetRequestID(r.Context()))
}
