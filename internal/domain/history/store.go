package history

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrms/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(database db.Querier) *Store {
	return &Store{DB: database}
}

const recordColumns = `
    id, employee_id, effective_date, end_date,
    COALESCE(job_title, ''), COALESCE(job_level, ''),
    COALESCE(department_id::text, ''), COALESCE(manager_id::text, ''),
    salary, COALESCE(currency, ''),
    change_type, COALESCE(change_reason, ''), COALESCE(changed_by::text, ''),
    is_current, created_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EffectiveDate, &rec.EndDate,
		&rec.JobTitle, &rec.JobLevel,
		&rec.DepartmentID, &rec.ManagerID,
		&rec.Salary, &rec.Currency,
		&rec.ChangeType, &rec.ChangeReason, &rec.ChangedBy,
		&rec.IsCurrent, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) Get(ctx context.Context, recordID string) (*Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+`
    FROM employment_history
    WHERE id = $1
  `, recordID)
	return scanRecord(row)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+`
    FROM employment_history
    WHERE employee_id = $1
    ORDER BY effective_date
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (s *Store) ListByChangeType(ctx context.Context, employeeID, changeType string) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+`
    FROM employment_history
    WHERE employee_id = $1 AND change_type = $2
    ORDER BY effective_date
  `, employeeID, changeType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Current returns the employee's open current record, or ErrNoCurrentRecord.
func (s *Store) Current(ctx context.Context, employeeID string) (*Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+`
    FROM employment_history
    WHERE employee_id = $1 AND is_current
  `, employeeID)
	rec, err := scanRecord(row)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoCurrentRecord
	}
	return rec, err
}

func (s *Store) EmployeeExists(ctx context.Context, orgID, employeeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM employees
    WHERE organization_id = $1 AND id = $2
  `, orgID, employeeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertWithTransition performs the whole append as one transaction: close
// the previous record when requested, clear is_current on every other row
// when the new record is current, insert.
func (s *Store) InsertWithTransition(ctx context.Context, rec Record, closePrevious *Record) (string, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if closePrevious != nil {
		if _, err := tx.Exec(ctx, `
    UPDATE employment_history
    SET end_date = $1, is_current = FALSE
    WHERE id = $2
  `, closePrevious.EndDate, closePrevious.ID); err != nil {
			return "", err
		}
	}

	if rec.IsCurrent {
		if _, err := tx.Exec(ctx, `
    UPDATE employment_history
    SET is_current = FALSE
    WHERE employee_id = $1 AND is_current
  `, rec.EmployeeID); err != nil {
			return "", err
		}
	}

	var id string
	if err := tx.QueryRow(ctx, `
    INSERT INTO employment_history (employee_id, effective_date, end_date, job_title, job_level,
      department_id, manager_id, salary, currency, change_type, change_reason, changed_by, is_current)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    RETURNING id
  `,
		rec.EmployeeID, rec.EffectiveDate, rec.EndDate, rec.JobTitle, rec.JobLevel,
		nullIfEmpty(rec.DepartmentID), nullIfEmpty(rec.ManagerID), rec.Salary, rec.Currency,
		rec.ChangeType, rec.ChangeReason, nullIfEmpty(rec.ChangedBy), rec.IsCurrent,
	).Scan(&id); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
