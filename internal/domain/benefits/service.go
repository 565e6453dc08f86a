package benefits

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

func (s *Service) ListPlans(ctx context.Context, orgID string) ([]Plan, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, organization_id, name, plan_type, COALESCE(provider, ''), valid_from, valid_to, created_at
    FROM benefit_plans
    WHERE organization_id = $1
    ORDER BY name
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.PlanType, &p.Provider, &p.ValidFrom, &p.ValidTo, &p.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *Service) GetPlan(ctx context.Context, orgID, planID string) (*Plan, error) {
	var p Plan
	err := s.DB.QueryRow(ctx, `
    SELECT id, organization_id, name, plan_type, COALESCE(provider, ''), valid_from, valid_to, created_at
    FROM benefit_plans
    WHERE organization_id = $1 AND id = $2
  `, orgID, planID).Scan(&p.ID, &p.OrganizationID, &p.Name, &p.PlanType, &p.Provider, &p.ValidFrom, &p.ValidTo, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) CreatePlan(ctx context.Context, plan Plan) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO benefit_plans (organization_id, name, plan_type, provider, valid_from, valid_to)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, plan.OrganizationID, plan.Name, plan.PlanType, plan.Provider, plan.ValidFrom, plan.ValidTo).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) ListEnrollments(ctx context.Context, employeeID string) ([]Enrollment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, plan_id, start_date, end_date, status, created_at
    FROM employee_benefits
    WHERE employee_id = $1
    ORDER BY start_date
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Enrollment
	for rows.Next() {
		var e Enrollment
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.PlanID, &e.StartDate, &e.EndDate, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Service) Enroll(ctx context.Context, orgID, employeeID, planID string, startDate time.Time) (string, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE organization_id = $1 AND id = $2
  `, orgID, employeeID).Scan(&count); err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrEmployeeNotFound
	}

	plan, err := s.GetPlan(ctx, orgID, planID)
	if err != nil {
		return "", err
	}
	if plan.IsExpired(time.Now()) {
		return "", ErrPlanExpired
	}

	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM employee_benefits
    WHERE employee_id = $1 AND plan_id = $2 AND status = $3
  `, employeeID, planID, EnrollmentActive).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrAlreadyEnrolled
	}

	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_benefits (employee_id, plan_id, start_date, status)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, employeeID, planID, startDate, EnrollmentActive).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// Unenroll closes the enrollment instead of deleting it.
func (s *Service) Unenroll(ctx context.Context, employeeID, enrollmentID string, endDate time.Time) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employee_benefits
    SET status = $1, end_date = $2
    WHERE id = $3 AND employee_id = $4 AND status = $5
  `, EnrollmentEnded, endDate, enrollmentID, employeeID, EnrollmentActive)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEnrollmentClosed
	}
	return nil
}

// ExpireLapsedEnrollments ends active enrollments whose plan validity has
// passed. Used by the scheduled sweep.
func (s *Service) ExpireLapsedEnrollments(ctx context.Context, orgID string, now time.Time) (int, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employee_benefits eb
    SET status = $1, end_date = p.valid_to
    FROM benefit_plans p
    WHERE eb.plan_id = p.id
      AND p.organization_id = $2
      AND eb.status = $3
      AND p.valid_to IS NOT NULL
      AND p.valid_to < $4
  `, EnrollmentEnded, orgID, EnrollmentActive, now)
	if err != nil {
		return 0, err
	}
	return int(cmd.RowsAffected()), nil
}
