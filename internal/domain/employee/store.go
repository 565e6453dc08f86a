package employee

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

const employeeColumns = `
    id, organization_id, employee_number, first_name, last_name, email,
    COALESCE(phone, ''), status, employment_type,
    COALESCE(job_title, ''), COALESCE(job_level, ''),
    salary, COALESCE(currency, ''),
    hire_date, termination_date, probation_end_date,
    COALESCE(manager_id::text, ''), COALESCE(department_id::text, ''), COALESCE(location_id::text, ''),
    created_at, updated_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.OrganizationID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.Phone, &emp.Status, &emp.EmploymentType,
		&emp.JobTitle, &emp.JobLevel,
		&emp.Salary, &emp.Currency,
		&emp.HireDate, &emp.TerminationDate, &emp.ProbationEnd,
		&emp.ManagerID, &emp.DepartmentID, &emp.LocationID,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) Get(ctx context.Context, orgID, employeeID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE organization_id = $1 AND id = $2
  `, orgID, employeeID)
	return scanEmployee(row)
}

func (s *Store) List(ctx context.Context, orgID string, limit, offset int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE organization_id = $1
    ORDER BY last_name, first_name
    LIMIT $2 OFFSET $3
  `, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *Store) ExistsByNumber(ctx context.Context, orgID, employeeNumber, excludeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM employees
    WHERE organization_id = $1 AND employee_number = $2 AND id::text <> $3
  `, orgID, employeeNumber, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Exists(ctx context.Context, orgID, employeeID string) (bool, error) {
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

func (s *Store) Create(ctx context.Context, emp Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (organization_id, employee_number, first_name, last_name, email, phone,
      status, employment_type, job_title, job_level, salary, currency,
      hire_date, termination_date, probation_end_date, manager_id, department_id, location_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
    RETURNING id
  `,
		emp.OrganizationID, emp.EmployeeNumber, emp.FirstName, emp.LastName, emp.Email, emp.Phone,
		emp.Status, emp.EmploymentType, emp.JobTitle, emp.JobLevel, emp.Salary, emp.Currency,
		emp.HireDate, emp.TerminationDate, emp.ProbationEnd,
		nullIfEmpty(emp.ManagerID), nullIfEmpty(emp.DepartmentID), nullIfEmpty(emp.LocationID),
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, orgID, employeeID string, emp Employee) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET employee_number = $1,
        first_name = $2,
        last_name = $3,
        email = $4,
        phone = $5,
        employment_type = $6,
        job_title = $7,
        job_level = $8,
        salary = $9,
        currency = $10,
        hire_date = $11,
        probation_end_date = $12,
        manager_id = $13,
        department_id = $14,
        location_id = $15,
        updated_at = now()
    WHERE organization_id = $16 AND id = $17
  `,
		emp.EmployeeNumber, emp.FirstName, emp.LastName, emp.Email, emp.Phone,
		emp.EmploymentType, emp.JobTitle, emp.JobLevel, emp.Salary, emp.Currency,
		emp.HireDate, emp.ProbationEnd,
		nullIfEmpty(emp.ManagerID), nullIfEmpty(emp.DepartmentID), nullIfEmpty(emp.LocationID),
		orgID, employeeID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, orgID, employeeID, status string, terminationDate any) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET status = $1, termination_date = $2, updated_at = now()
    WHERE organization_id = $3 AND id = $4
  `, status, terminationDate, orgID, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DirectReportCount(ctx context.Context, orgID, employeeID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM employees
    WHERE organization_id = $1 AND manager_id = $2
  `, orgID, employeeID).Scan(&count)
	return count, err
}

func (s *Store) Delete(ctx context.Context, orgID, employeeID string) error {
	cmd, err := s.DB.Exec(ctx, `
    DELETE FROM employees
    WHERE organization_id = $1 AND id = $2
  `, orgID, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ProbationDue lists probation employees whose probation end date has passed.
func (s *Store) ProbationDue(ctx context.Context, orgID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE organization_id = $1 AND status = $2 AND probation_end_date IS NOT NULL AND probation_end_date <= now()
  `, orgID, StatusProbation)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
