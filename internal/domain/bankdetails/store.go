package bankdetails

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

const detailColumns = `
    id, employee_id, bank_name, account_number,
    COALESCE(ifsc_code, ''), COALESCE(branch, ''), account_type,
    is_primary, is_active, created_at, updated_at`

func scanDetail(row pgx.Row) (*BankDetail, error) {
	var d BankDetail
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.BankName, &d.AccountNumber,
		&d.IFSCCode, &d.Branch, &d.AccountType,
		&d.IsPrimary, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) Get(ctx context.Context, bankDetailID string) (*BankDetail, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+detailColumns+`
    FROM employee_bank_details
    WHERE id = $1
  `, bankDetailID)
	return scanDetail(row)
}

func (s *Store) ListActive(ctx context.Context, employeeID string) ([]BankDetail, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+detailColumns+`
    FROM employee_bank_details
    WHERE employee_id = $1 AND is_active
    ORDER BY created_at
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BankDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (s *Store) AccountNumberExists(ctx context.Context, employeeID, accountNumber string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM employee_bank_details
    WHERE employee_id = $1 AND account_number = $2
  `, employeeID, accountNumber).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
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

// InsertPrimarySwap clears the primary flag on the employee's other accounts
// and inserts the new detail as primary, in one transaction.
func (s *Store) InsertPrimarySwap(ctx context.Context, detail BankDetail) (string, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    UPDATE employee_bank_details
    SET is_primary = FALSE, updated_at = now()
    WHERE employee_id = $1 AND is_primary
  `, detail.EmployeeID); err != nil {
		return "", err
	}

	var id string
	if err := tx.QueryRow(ctx, `
    INSERT INTO employee_bank_details (employee_id, bank_name, account_number, ifsc_code, branch, account_type, is_primary, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,TRUE,TRUE)
    RETURNING id
  `, detail.EmployeeID, detail.BankName, detail.AccountNumber, detail.IFSCCode, detail.Branch, detail.AccountType).Scan(&id); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Insert(ctx context.Context, detail BankDetail) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_bank_details (employee_id, bank_name, account_number, ifsc_code, branch, account_type, is_primary, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,FALSE,TRUE)
    RETURNING id
  `, detail.EmployeeID, detail.BankName, detail.AccountNumber, detail.IFSCCode, detail.Branch, detail.AccountType).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// SetPrimary moves the primary designation to the given account in one
// transaction.
func (s *Store) SetPrimary(ctx context.Context, employeeID, bankDetailID string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    UPDATE employee_bank_details
    SET is_primary = FALSE, updated_at = now()
    WHERE employee_id = $1 AND is_primary
  `, employeeID); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `
    UPDATE employee_bank_details
    SET is_primary = TRUE, updated_at = now()
    WHERE id = $1 AND employee_id = $2 AND is_active
  `, bankDetailID, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// SoftDelete deactivates the account; a primary account loses its flag.
func (s *Store) SoftDelete(ctx context.Context, bankDetailID string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employee_bank_details
    SET is_active = FALSE, is_primary = FALSE, updated_at = now()
    WHERE id = $1 AND is_active
  `, bankDetailID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
