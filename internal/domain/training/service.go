package training

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

func (s *Service) ListPrograms(ctx context.Context, orgID string) ([]Program, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, organization_id, name, COALESCE(description, ''), COALESCE(trainer, ''), capacity, start_date, end_date, created_at
    FROM training_programs
    WHERE organization_id = $1
    ORDER BY start_date DESC
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.Description, &p.Trainer, &p.Capacity, &p.StartDate, &p.EndDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (s *Service) GetProgram(ctx context.Context, orgID, programID string) (*Program, error) {
	var p Program
	err := s.DB.QueryRow(ctx, `
    SELECT id, organization_id, name, COALESCE(description, ''), COALESCE(trainer, ''), capacity, start_date, end_date, created_at
    FROM training_programs
    WHERE organization_id = $1 AND id = $2
  `, orgID, programID).Scan(&p.ID, &p.OrganizationID, &p.Name, &p.Description, &p.Trainer, &p.Capacity, &p.StartDate, &p.EndDate, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) CreateProgram(ctx context.Context, program Program) (string, error) {
	if program.Capacity <= 0 {
		return "", ErrInvalidCapacity
	}
	if program.EndDate.Before(program.StartDate) {
		return "", ErrInvalidDates
	}

	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO training_programs (organization_id, name, description, trainer, capacity, start_date, end_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, program.OrganizationID, program.Name, program.Description, program.Trainer, program.Capacity, program.StartDate, program.EndDate).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) ListEnrollments(ctx context.Context, orgID, programID string) ([]Enrollment, error) {
	if _, err := s.GetProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, program_id, employee_id, status, score, enrolled_at, completed_at
    FROM training_enrollments
    WHERE program_id = $1
    ORDER BY enrolled_at
  `, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []Enrollment
	for rows.Next() {
		var e Enrollment
		if err := rows.Scan(&e.ID, &e.ProgramID, &e.EmployeeID, &e.Status, &e.Score, &e.EnrolledAt, &e.CompletedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// Enroll adds an employee to a program. Cancelled enrollments do not count
// against capacity or the duplicate check.
func (s *Service) Enroll(ctx context.Context, orgID, programID, employeeID string) (string, error) {
	program, err := s.GetProgram(ctx, orgID, programID)
	if err != nil {
		return "", err
	}
	if program.EndDate.Before(time.Now()) {
		return "", ErrProgramEnded
	}

	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE organization_id = $1 AND id = $2
  `, orgID, employeeID).Scan(&count); err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrEmployeeNotFound
	}

	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM training_enrollments
    WHERE program_id = $1 AND employee_id = $2 AND status <> $3
  `, programID, employeeID, EnrollmentCancelled).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrAlreadyEnrolled
	}

	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM training_enrollments
    WHERE program_id = $1 AND status <> $2
  `, programID, EnrollmentCancelled).Scan(&count); err != nil {
		return "", err
	}
	if count >= program.Capacity {
		return "", ErrProgramFull
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO training_enrollments (program_id, employee_id, status, enrolled_at)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, programID, employeeID, EnrollmentEnrolled, time.Now()).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) Complete(ctx context.Context, orgID, enrollmentID string, score *int) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE training_enrollments te
    SET status = $1, score = $2, completed_at = $3
    FROM training_programs p
    WHERE te.program_id = p.id
      AND p.organization_id = $4
      AND te.id = $5
      AND te.status = $6
  `, EnrollmentCompleted, score, time.Now(), orgID, enrollmentID, EnrollmentEnrolled)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEnrollmentNotFound
	}
	return nil
}

func (s *Service) Cancel(ctx context.Context, orgID, enrollmentID string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE training_enrollments te
    SET status = $1
    FROM training_programs p
    WHERE te.program_id = p.id
      AND p.organization_id = $2
      AND te.id = $3
      AND te.status = $4
  `, EnrollmentCancelled, orgID, enrollmentID, EnrollmentEnrolled)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEnrollmentNotFound
	}
	return nil
}
