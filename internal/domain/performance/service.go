package performance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrms/internal/platform/db"
)

type Service struct {
	DB db.Querier
}

func NewService(database db.Querier) *Service {
	return &Service{DB: database}
}

func (s *Service) ListCycles(ctx context.Context, orgID string) ([]ReviewCycle, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, organization_id, name, start_date, end_date, status, closed_at, created_at
    FROM review_cycles
    WHERE organization_id = $1
    ORDER BY start_date DESC
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []ReviewCycle
	for rows.Next() {
		var c ReviewCycle
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.StartDate, &c.EndDate, &c.Status, &c.ClosedAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

func (s *Service) getCycle(ctx context.Context, orgID, cycleID string) (*ReviewCycle, error) {
	var c ReviewCycle
	err := s.DB.QueryRow(ctx, `
    SELECT id, organization_id, name, start_date, end_date, status, closed_at, created_at
    FROM review_cycles
    WHERE organization_id = $1 AND id = $2
  `, orgID, cycleID).Scan(&c.ID, &c.OrganizationID, &c.Name, &c.StartDate, &c.EndDate, &c.Status, &c.ClosedAt, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCycleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) CreateCycle(ctx context.Context, cycle ReviewCycle) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO review_cycles (organization_id, name, start_date, end_date, status)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, cycle.OrganizationID, cycle.Name, cycle.StartDate, cycle.EndDate, CycleOpen).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) CloseCycle(ctx context.Context, orgID, cycleID string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE review_cycles
    SET status = $1, closed_at = $2
    WHERE organization_id = $3 AND id = $4 AND status = $5
  `, CycleClosed, time.Now(), orgID, cycleID, CycleOpen)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (s *Service) ListReviews(ctx context.Context, orgID, cycleID string) ([]Review, error) {
	if _, err := s.getCycle(ctx, orgID, cycleID); err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, cycle_id, employee_id, reviewer_id, rating, COALESCE(comments, ''), status, submitted_at, created_at
    FROM performance_reviews
    WHERE cycle_id = $1
    ORDER BY created_at
  `, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.CycleID, &r.EmployeeID, &r.ReviewerID, &r.Rating, &r.Comments, &r.Status, &r.SubmittedAt, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// CreateReview opens a draft review. One review per employee per cycle, and
// only while the cycle is open.
func (s *Service) CreateReview(ctx context.Context, orgID string, review Review) (string, error) {
	cycle, err := s.getCycle(ctx, orgID, review.CycleID)
	if err != nil {
		return "", err
	}
	if cycle.Status != CycleOpen {
		return "", ErrCycleClosed
	}

	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE organization_id = $1 AND id = $2
  `, orgID, review.EmployeeID).Scan(&count); err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrEmployeeNotFound
	}

	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM performance_reviews WHERE cycle_id = $1 AND employee_id = $2
  `, review.CycleID, review.EmployeeID).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrDuplicateReview
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO performance_reviews (cycle_id, employee_id, reviewer_id, status)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, review.CycleID, review.EmployeeID, review.ReviewerID, ReviewDraft).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// SubmitReview finalizes a draft review with its rating. Submitted reviews
// are immutable.
func (s *Service) SubmitReview(ctx context.Context, orgID, reviewID string, rating int, comments string) error {
	if !ValidRating(rating) {
		return ErrInvalidRating
	}

	var status string
	err := s.DB.QueryRow(ctx, `
    SELECT r.status
    FROM performance_reviews r
    JOIN review_cycles c ON r.cycle_id = c.id
    WHERE c.organization_id = $1 AND r.id = $2
  `, orgID, reviewID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrReviewNotFound
	}
	if err != nil {
		return err
	}
	if status == ReviewSubmitted {
		return ErrReviewSubmitted
	}

	_, err = s.DB.Exec(ctx, `
    UPDATE performance_reviews
    SET rating = $1, comments = $2, status = $3, submitted_at = $4
    WHERE id = $5
  `, rating, comments, ReviewSubmitted, time.Now(), reviewID)
	return err
}

func (s *Service) ListGoals(ctx context.Context, orgID, employeeID string) ([]Goal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT g.id, g.employee_id, g.cycle_id, g.title, COALESCE(g.description, ''), g.status, g.progress, g.due_date, g.created_at, g.updated_at
    FROM goals g
    JOIN employees e ON g.employee_id = e.id
    WHERE e.organization_id = $1 AND g.employee_id = $2
    ORDER BY g.created_at
  `, orgID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.EmployeeID, &g.CycleID, &g.Title, &g.Description, &g.Status, &g.Progress, &g.DueDate, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Service) CreateGoal(ctx context.Context, orgID string, goal Goal) (string, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE organization_id = $1 AND id = $2
  `, orgID, goal.EmployeeID).Scan(&count); err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrEmployeeNotFound
	}

	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO goals (employee_id, cycle_id, title, description, status, progress, due_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, goal.EmployeeID, goal.CycleID, goal.Title, goal.Description, GoalNotStarted, 0, goal.DueDate).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateGoalProgress moves progress and derives status. Progress 100 marks
// the goal COMPLETED; anything above 0 marks it IN_PROGRESS.
func (s *Service) UpdateGoalProgress(ctx context.Context, orgID, goalID string, progress int) error {
	if !ValidProgress(progress) {
		return ErrInvalidProgress
	}

	status := GoalInProgress
	switch {
	case progress == 100:
		status = GoalCompleted
	case progress == 0:
		status = GoalNotStarted
	}

	cmd, err := s.DB.Exec(ctx, `
    UPDATE goals g
    SET progress = $1, status = $2, updated_at = $3
    FROM employees e
    WHERE g.employee_id = e.id
      AND e.organization_id = $4
      AND g.id = $5
      AND g.status <> $6
  `, progress, status, time.Now(), orgID, goalID, GoalCancelled)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *Service) CancelGoal(ctx context.Context, orgID, goalID string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE goals g
    SET status = $1, updated_at = $2
    FROM employees e
    WHERE g.employee_id = e.id
      AND e.organization_id = $3
      AND g.id = $4
      AND g.status NOT IN ($5, $6)
  `, GoalCancelled, time.Now(), orgID, goalID, GoalCompleted, GoalCancelled)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// Summary aggregates goal and review figures for one cycle.
func (s *Service) Summary(ctx context.Context, orgID, cycleID string) (CycleSummary, error) {
	if _, err := s.getCycle(ctx, orgID, cycleID); err != nil {
		return CycleSummary{}, err
	}

	var goalsTotal, goalsCompleted, reviewsTotal, reviewsSubmitted int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1), COUNT(1) FILTER (WHERE status = $2)
    FROM goals
    WHERE cycle_id = $1
  `, cycleID, GoalCompleted).Scan(&goalsTotal, &goalsCompleted)
	if err != nil {
		return CycleSummary{}, err
	}

	err = s.DB.QueryRow(ctx, `
    SELECT COUNT(1), COUNT(1) FILTER (WHERE status = $2)
    FROM performance_reviews
    WHERE cycle_id = $1
  `, cycleID, ReviewSubmitted).Scan(&reviewsTotal, &reviewsSubmitted)
	if err != nil {
		return CycleSummary{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT rating FROM performance_reviews
    WHERE cycle_id = $1 AND rating IS NOT NULL
  `, cycleID)
	if err != nil {
		return CycleSummary{}, err
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return CycleSummary{}, err
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return CycleSummary{}, err
	}

	return buildCycleSummary(cycleID, goalsTotal, goalsCompleted, reviewsTotal, reviewsSubmitted, ratings), nil
}
