package history

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var recordRowColumns = []string{
	"id", "employee_id", "effective_date", "end_date",
	"job_title", "job_level", "department_id", "manager_id",
	"salary", "currency", "change_type", "change_reason", "changed_by",
	"is_current", "created_at",
}

const employeeExistsSQL = `
    SELECT COUNT(1)
    FROM employees
    WHERE organization_id = $1 AND id = $2
  `

func TestRecordPromotionClosesCurrentRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	service := NewService(NewStore(mock))

	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	promoted := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	closed := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	currentRow := func() *pgxmock.Rows {
		return pgxmock.NewRows(recordRowColumns).AddRow(
			"h1", "emp-1", joined, nil,
			"Engineer", "L4", "dep-1", "mgr-1",
			nil, "INR", ChangeJoining, "", "",
			true, created,
		)
	}

	// transition: employee check, current record lookup
	mock.ExpectQuery(regexp.QuoteMeta(employeeExistsSQL)).
		WithArgs("org-1", "emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`
    FROM employment_history
    WHERE employee_id = $1 AND is_current
  `)).
		WithArgs("emp-1").
		WillReturnRows(currentRow())

	// create: employee check, overlap scan
	mock.ExpectQuery(regexp.QuoteMeta(employeeExistsSQL)).
		WithArgs("org-1", "emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`
    FROM employment_history
    WHERE employee_id = $1
    ORDER BY effective_date
  `)).
		WithArgs("emp-1").
		WillReturnRows(currentRow())

	// one transaction: close h1 at 2024-05-31, clear current, insert
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`
    UPDATE employment_history
    SET end_date = $1, is_current = FALSE
    WHERE id = $2
  `)).
		WithArgs(&closed, "h1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`
    UPDATE employment_history
    SET is_current = FALSE
    WHERE employee_id = $1 AND is_current
  `)).
		WithArgs("emp-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employment_history")).
		WithArgs(
			"emp-1", promoted, pgxmock.AnyArg(), "Senior Engineer", "L5",
			"dep-1", "mgr-1", pgxmock.AnyArg(), "INR",
			ChangePromotion, "annual cycle", pgxmock.AnyArg(), true,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("h2"))
	mock.ExpectCommit()
	mock.ExpectRollback()

	id, err := service.RecordPromotion(context.Background(), "org-1", Record{
		EmployeeID:    "emp-1",
		EffectiveDate: promoted,
		JobTitle:      "Senior Engineer",
		JobLevel:      "L5",
		ChangeReason:  "annual cycle",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "h2" {
		t.Fatalf("unexpected id: %s", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordPromotionRejectsBackdatedEffectiveDate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	service := NewService(NewStore(mock))

	joined := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(employeeExistsSQL)).
		WithArgs("org-1", "emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`
    FROM employment_history
    WHERE employee_id = $1 AND is_current
  `)).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows(recordRowColumns).AddRow(
			"h1", "emp-1", joined, nil,
			"Engineer", "L4", "dep-1", "mgr-1",
			nil, "INR", ChangeJoining, "", "",
			true, created,
		))

	// Promoting effective before the current record started would close h1
	// with an end date preceding its own effective date.
	_, err = service.RecordPromotion(context.Background(), "org-1", Record{
		EmployeeID:    "emp-1",
		EffectiveDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		JobTitle:      "Senior Engineer",
	})
	if !errors.Is(err, ErrBackdatedTransition) {
		t.Fatalf("expected ErrBackdatedTransition, got %v", err)
	}

	// Same effective date is rejected too: the close-out would land on the
	// day before the record began.
	mock.ExpectQuery(regexp.QuoteMeta(employeeExistsSQL)).
		WithArgs("org-1", "emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`
    FROM employment_history
    WHERE employee_id = $1 AND is_current
  `)).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows(recordRowColumns).AddRow(
			"h1", "emp-1", joined, nil,
			"Engineer", "L4", "dep-1", "mgr-1",
			nil, "INR", ChangeJoining, "", "",
			true, created,
		))

	_, err = service.RecordPromotion(context.Background(), "org-1", Record{
		EmployeeID:    "emp-1",
		EffectiveDate: joined,
		JobTitle:      "Senior Engineer",
	})
	if !errors.Is(err, ErrBackdatedTransition) {
		t.Fatalf("expected ErrBackdatedTransition, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRejectsOverlap(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	service := NewService(NewStore(mock))

	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(employeeExistsSQL)).
		WithArgs("org-1", "emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`
    FROM employment_history
    WHERE employee_id = $1
    ORDER BY effective_date
  `)).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows(recordRowColumns).AddRow(
			"h1", "emp-1", joined, nil,
			"Engineer", "L4", "", "",
			nil, "INR", ChangeJoining, "", "",
			true, created,
		))

	_, err = service.Create(context.Background(), "org-1", Record{
		EmployeeID:    "emp-1",
		EffectiveDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrOverlappingInterval) {
		t.Fatalf("expected ErrOverlappingInterval, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	service := NewService(NewStore(nil))
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.Create(context.Background(), "org-1", Record{
		EmployeeID:    "emp-1",
		EffectiveDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       &end,
	})
	if !errors.Is(err, ErrEndBeforeEffective) {
		t.Fatalf("expected ErrEndBeforeEffective, got %v", err)
	}
}

func expectTimeline(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()

	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closed := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	promoted := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(employeeExistsSQL)).
		WithArgs("org-1", "emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`
    FROM employment_history
    WHERE employee_id = $1
    ORDER BY effective_date
  `)).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows(recordRowColumns).
			AddRow(
				"h1", "emp-1", joined, &closed,
				"Engineer", "L4", "dep-1", "mgr-1",
				nil, "INR", ChangeJoining, "", "",
				false, created,
			).
			AddRow(
				"h2", "emp-1", promoted, nil,
				"Senior Engineer", "L5", "dep-1", "mgr-1",
				nil, "INR", ChangePromotion, "", "",
				true, created,
			))
}

func TestEffectiveAtResolvesOpenRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	service := NewService(NewStore(mock))
	expectTimeline(t, mock)

	// 2024-07-15 falls after h1's close-out, inside the open-ended h2.
	rec, err := service.EffectiveAt(context.Background(), "org-1", "emp-1",
		time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "h2" {
		t.Fatalf("expected h2, got %s", rec.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEffectiveAtResolvesClosedRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	service := NewService(NewStore(mock))
	expectTimeline(t, mock)

	rec, err := service.EffectiveAt(context.Background(), "org-1", "emp-1",
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "h1" {
		t.Fatalf("expected h1, got %s", rec.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEffectiveAtBeforeTimeline(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	service := NewService(NewStore(mock))
	expectTimeline(t, mock)

	_, err = service.EffectiveAt(context.Background(), "org-1", "emp-1",
		time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
