package bankdetails

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

const clearPrimarySQL = `
    UPDATE employee_bank_details
    SET is_primary = FALSE, updated_at = now()
    WHERE employee_id = $1 AND is_primary
  `

func TestInsertPrimarySwap(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(clearPrimarySQL)).
		WithArgs("emp-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(regexp.QuoteMeta(`
    INSERT INTO employee_bank_details (employee_id, bank_name, account_number, ifsc_code, branch, account_type, is_primary, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,TRUE,TRUE)
    RETURNING id
  `)).
		WithArgs("emp-1", "State Bank", "123456789012", "SBIN0001234", "Main", AccountTypeSavings).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("bd-2"))
	mock.ExpectCommit()
	mock.ExpectRollback()

	id, err := store.InsertPrimarySwap(context.Background(), BankDetail{
		EmployeeID:    "emp-1",
		BankName:      "State Bank",
		AccountNumber: "123456789012",
		IFSCCode:      "SBIN0001234",
		Branch:        "Main",
		AccountType:   AccountTypeSavings,
		IsPrimary:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "bd-2" {
		t.Fatalf("unexpected id: %s", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetPrimaryTargetMustBeActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(clearPrimarySQL)).
		WithArgs("emp-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mock.ExpectExec(regexp.QuoteMeta(`
    UPDATE employee_bank_details
    SET is_primary = TRUE, updated_at = now()
    WHERE id = $1 AND employee_id = $2 AND is_active
  `)).
		WithArgs("bd-9", "emp-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = store.SetPrimary(context.Background(), "emp-1", "bd-9")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive target, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
