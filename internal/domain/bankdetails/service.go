package bankdetails

import (
	"context"
	"log/slog"
	"strings"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, orgID, employeeID string) ([]BankDetail, error) {
	ok, err := s.store.EmployeeExists(ctx, orgID, employeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return s.store.ListActive(ctx, employeeID)
}

func (s *Service) Get(ctx context.Context, employeeID, bankDetailID string) (*BankDetail, error) {
	detail, err := s.store.Get(ctx, bankDetailID)
	if err != nil {
		return nil, err
	}
	if detail.EmployeeID != employeeID {
		return nil, ErrWrongEmployee
	}
	return detail, nil
}

func (s *Service) Add(ctx context.Context, orgID string, detail BankDetail) (string, error) {
	detail.BankName = strings.TrimSpace(detail.BankName)
	detail.IFSCCode = strings.ToUpper(strings.TrimSpace(detail.IFSCCode))
	detail.AccountType = strings.ToUpper(strings.TrimSpace(detail.AccountType))

	ok, err := s.store.EmployeeExists(ctx, orgID, detail.EmployeeID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrEmployeeNotFound
	}

	if err := Validate(detail); err != nil {
		return "", err
	}

	exists, err := s.store.AccountNumberExists(ctx, detail.EmployeeID, detail.AccountNumber)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrDuplicateAccountNumber
	}

	if detail.IsPrimary {
		return s.store.InsertPrimarySwap(ctx, detail)
	}
	return s.store.Insert(ctx, detail)
}

func (s *Service) SetPrimary(ctx context.Context, employeeID, bankDetailID string) error {
	detail, err := s.store.Get(ctx, bankDetailID)
	if err != nil {
		return err
	}
	if detail.EmployeeID != employeeID {
		return ErrWrongEmployee
	}
	if !detail.IsActive {
		return ErrAccountInactive
	}
	return s.store.SetPrimary(ctx, employeeID, bankDetailID)
}

// Delete soft-deletes the account. Deleting the primary account leaves the
// employee with no primary; the caller is expected to designate a new one.
func (s *Service) Delete(ctx context.Context, employeeID, bankDetailID string) error {
	detail, err := s.store.Get(ctx, bankDetailID)
	if err != nil {
		return err
	}
	if detail.EmployeeID != employeeID {
		return ErrWrongEmployee
	}
	if detail.IsPrimary {
		slog.Warn("deleting primary bank account, employee left without a primary", "employeeId", employeeID, "bankDetailId", bankDetailID)
	}
	return s.store.SoftDelete(ctx, bankDetailID)
}
