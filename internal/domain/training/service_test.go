package training

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

const programSQL = `
    SELECT id, organization_id, name, COALESCE(description, ''), COALESCE(trainer, ''), capacity, start_date, end_date, created_at
    FROM training_programs
    WHERE organization_id = $1 AND id = $2
  `

func programRow(capacity int) *pgxmock.Rows {
	start := time.Now().AddDate(0, 0, 7)
	end := time.Now().AddDate(0, 1, 0)
	return pgxmock.NewRows([]string{"id", "organization_id", "name", "description", "trainer", "capacity", "start_date", "end_date", "created_at"}).
		AddRow("prog-1", "org-1", "Go Fundamentals", "", "", capacity, start, end, time.Now())
}

func TestEnrollRejectsWhenFull(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	svc := NewService(mock)

	mock.ExpectQuery(regexp.QuoteMeta(programSQL)).
		WithArgs("org-1", "prog-1").
		WillReturnRows(programRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`
    SELECT COUNT(1) FROM employees WHERE organization_id = $1 AND id = $2
  `)).
		WithArgs("org-1", "emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`
    SELECT COUNT(1) FROM training_enrollments
    WHERE program_id = $1 AND employee_id = $2 AND status <> $3
  `)).
		WithArgs("prog-1", "emp-1", EnrollmentCancelled).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`
    SELECT COUNT(1) FROM training_enrollments
    WHERE program_id = $1 AND status <> $2
  `)).
		WithArgs("prog-1", EnrollmentCancelled).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	_, err = svc.Enroll(context.Background(), "org-1", "prog-1", "emp-1")
	if !errors.Is(err, ErrProgramFull) {
		t.Fatalf("expected ErrProgramFull, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnrollRejectsDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	svc := NewService(mock)

	mock.ExpectQuery(regexp.QuoteMeta(programSQL)).
		WithArgs("org-1", "prog-1").
		WillReturnRows(programRow(10))
	mock.ExpectQuery(regexp.QuoteMeta(`
    SELECT COUNT(1) FROM employees WHERE organization_id = $1 AND id = $2
  `)).
		WithArgs("org-1", "emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`
    SELECT COUNT(1) FROM training_enrollments
    WHERE program_id = $1 AND employee_id = $2 AND status <> $3
  `)).
		WithArgs("prog-1", "emp-1", EnrollmentCancelled).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	_, err = svc.Enroll(context.Background(), "org-1", "prog-1", "emp-1")
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
