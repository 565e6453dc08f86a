package leave

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

const requestColumns = `id, employee_id, leave_type, start_date, end_date, days, COALESCE(reason, ''), status, decided_by, decided_at, created_at`

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.EmployeeID, &r.LeaveType, &r.StartDate, &r.EndDate, &r.Days, &r.Reason, &r.Status, &r.DecidedBy, &r.DecidedAt, &r.CreatedAt)
	return r, err
}

func (s *Service) ListByEmployee(ctx context.Context, orgID, employeeID string) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.days, COALESCE(lr.reason, ''), lr.status, lr.decided_by, lr.decided_at, lr.created_at
    FROM leave_requests lr
    JOIN employees e ON lr.employee_id = e.id
    WHERE e.organization_id = $1 AND lr.employee_id = $2
    ORDER BY lr.start_date DESC
  `, orgID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func (s *Service) ListPending(ctx context.Context, orgID string) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.days, COALESCE(lr.reason, ''), lr.status, lr.decided_by, lr.decided_at, lr.created_at
    FROM leave_requests lr
    JOIN employees e ON lr.employee_id = e.id
    WHERE e.organization_id = $1 AND lr.status = $2
    ORDER BY lr.created_at
  `, orgID, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// Create validates the range, computes the inclusive day count, and rejects
// ranges that intersect the employee's pending or approved requests.
func (s *Service) Create(ctx context.Context, orgID string, request Request) (string, error) {
	if !ValidLeaveType(request.LeaveType) {
		return "", ErrInvalidLeaveType
	}

	days, err := CalculateDays(request.StartDate, request.EndDate)
	if err != nil {
		return "", err
	}

	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE organization_id = $1 AND id = $2
  `, orgID, request.EmployeeID).Scan(&count); err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrEmployeeNotFound
	}

	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM leave_requests
    WHERE employee_id = $1
      AND status IN ($2, $3)
      AND start_date <= $4
      AND end_date >= $5
  `, request.EmployeeID, StatusPending, StatusApproved, request.EndDate, request.StartDate).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrOverlappingRequest
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, days, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, request.EmployeeID, request.LeaveType, request.StartDate, request.EndDate, days, request.Reason, StatusPending).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) Approve(ctx context.Context, orgID, requestID, deciderID string) error {
	return s.decide(ctx, orgID, requestID, deciderID, StatusApproved)
}

func (s *Service) Reject(ctx context.Context, orgID, requestID, deciderID string) error {
	return s.decide(ctx, orgID, requestID, deciderID, StatusRejected)
}

func (s *Service) decide(ctx context.Context, orgID, requestID, deciderID, status string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE leave_requests lr
    SET status = $1, decided_by = $2, decided_at = $3
    FROM employees e
    WHERE lr.employee_id = e.id
      AND e.organization_id = $4
      AND lr.id = $5
      AND lr.status = $6
  `, status, deciderID, time.Now(), orgID, requestID, StatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return s.decisionFailure(ctx, orgID, requestID)
	}
	return nil
}

// Cancel is only available to the requester while the request is pending.
func (s *Service) Cancel(ctx context.Context, orgID, requestID, employeeID string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE leave_requests lr
    SET status = $1
    FROM employees e
    WHERE lr.employee_id = e.id
      AND e.organization_id = $2
      AND lr.id = $3
      AND lr.employee_id = $4
      AND lr.status = $5
  `, StatusCancelled, orgID, requestID, employeeID, StatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		if ferr := s.decisionFailure(ctx, orgID, requestID); errors.Is(ferr, ErrNotPending) {
			return ErrCancelAfterDecide
		} else if ferr != nil {
			return ferr
		}
	}
	return nil
}

// decisionFailure distinguishes a missing request from one that has already
// been decided.
func (s *Service) decisionFailure(ctx context.Context, orgID, requestID string) error {
	var status string
	err := s.DB.QueryRow(ctx, `
    SELECT lr.status
    FROM leave_requests lr
    JOIN employees e ON lr.employee_id = e.id
    WHERE e.organization_id = $1 AND lr.id = $2
  `, orgID, requestID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	return ErrNotPending
}
