package organization

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

func scanDepartment(row pgx.Row) (*Department, error) {
	var dep Department
	err := row.Scan(
		&dep.ID, &dep.OrganizationID, &dep.Name, &dep.Code,
		&dep.ParentID, &dep.ManagerID, &dep.CreatedAt, &dep.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDepartmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

const departmentColumns = `
    id, organization_id, name, code,
    COALESCE(parent_id::text, ''), COALESCE(manager_id::text, ''),
    created_at, updated_at`

func (s *Store) GetDepartment(ctx context.Context, orgID, departmentID string) (*Department, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+departmentColumns+`
    FROM departments
    WHERE organization_id = $1 AND id = $2
  `, orgID, departmentID)
	return scanDepartment(row)
}

func (s *Store) ListDepartments(ctx context.Context, orgID string) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+departmentColumns+`
    FROM departments
    WHERE organization_id = $1
    ORDER BY name
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		dep, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *dep)
	}
	return out, rows.Err()
}

func (s *Store) DepartmentCodeOrNameTaken(ctx context.Context, orgID, code, name, excludeID string) (bool, bool, error) {
	var codeCount, nameCount int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FILTER (WHERE code = $2),
           COUNT(1) FILTER (WHERE name = $3)
    FROM departments
    WHERE organization_id = $1 AND id::text <> $4
  `, orgID, code, name, excludeID).Scan(&codeCount, &nameCount)
	if err != nil {
		return false, false, err
	}
	return codeCount > 0, nameCount > 0, nil
}

func (s *Store) CreateDepartment(ctx context.Context, dep Department) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (organization_id, name, code, parent_id, manager_id)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, dep.OrganizationID, dep.Name, dep.Code, nullIfEmpty(dep.ParentID), nullIfEmpty(dep.ManagerID)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, orgID, departmentID string, dep Department) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE departments
    SET name = $1, code = $2, parent_id = $3, manager_id = $4, updated_at = now()
    WHERE organization_id = $5 AND id = $6
  `, dep.Name, dep.Code, nullIfEmpty(dep.ParentID), nullIfEmpty(dep.ManagerID), orgID, departmentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *Store) SubDepartmentCount(ctx context.Context, orgID, departmentID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM departments
    WHERE organization_id = $1 AND parent_id = $2
  `, orgID, departmentID).Scan(&count)
	return count, err
}

func (s *Store) DeleteDepartment(ctx context.Context, orgID, departmentID string) error {
	cmd, err := s.DB.Exec(ctx, `
    DELETE FROM departments
    WHERE organization_id = $1 AND id = $2
  `, orgID, departmentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

// ManagerSummaries resolves the named employees for hierarchy nodes.
func (s *Store) ManagerSummaries(ctx context.Context, orgID string) (map[string]ManagerSummary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.first_name, e.last_name
    FROM employees e
    JOIN departments d ON d.manager_id = e.id
    WHERE d.organization_id = $1
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]ManagerSummary)
	for rows.Next() {
		var id, first, last string
		if err := rows.Scan(&id, &first, &last); err != nil {
			return nil, err
		}
		out[id] = ManagerSummary{ID: id, Name: first + " " + last}
	}
	return out, rows.Err()
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

func (s *Store) GetLocation(ctx context.Context, orgID, locationID string) (*Location, error) {
	var loc Location
	err := s.DB.QueryRow(ctx, `
    SELECT id, organization_id, name, COALESCE(address, ''), COALESCE(city, ''), COALESCE(country, ''), created_at
    FROM locations
    WHERE organization_id = $1 AND id = $2
  `, orgID, locationID).Scan(&loc.ID, &loc.OrganizationID, &loc.Name, &loc.Address, &loc.City, &loc.Country, &loc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (s *Store) ListLocations(ctx context.Context, orgID string) ([]Location, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, organization_id, name, COALESCE(address, ''), COALESCE(city, ''), COALESCE(country, ''), created_at
    FROM locations
    WHERE organization_id = $1
    ORDER BY name
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.OrganizationID, &loc.Name, &loc.Address, &loc.City, &loc.Country, &loc.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

func (s *Store) LocationNameTaken(ctx context.Context, orgID, name, excludeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM locations
    WHERE organization_id = $1 AND name = $2 AND id::text <> $3
  `, orgID, name, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateLocation(ctx context.Context, loc Location) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO locations (organization_id, name, address, city, country)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, loc.OrganizationID, loc.Name, loc.Address, loc.City, loc.Country).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) DeleteLocation(ctx context.Context, orgID, locationID string) error {
	cmd, err := s.DB.Exec(ctx, `
    DELETE FROM locations
    WHERE organization_id = $1 AND id = $2
  `, orgID, locationID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrLocationNotFound
	}
	return nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
