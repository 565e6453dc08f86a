package history

import (
	"context"
	"errors"
	"time"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, recordID string) (*Record, error) {
	return s.store.Get(ctx, recordID)
}

func (s *Service) ListByEmployee(ctx context.Context, orgID, employeeID string) ([]Record, error) {
	if err := s.requireEmployee(ctx, orgID, employeeID); err != nil {
		return nil, err
	}
	return s.store.ListByEmployee(ctx, employeeID)
}

func (s *Service) ListByChangeType(ctx context.Context, orgID, employeeID, changeType string) ([]Record, error) {
	valid := false
	for _, t := range ChangeTypes {
		if changeType == t {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidChangeType
	}
	if err := s.requireEmployee(ctx, orgID, employeeID); err != nil {
		return nil, err
	}
	return s.store.ListByChangeType(ctx, employeeID, changeType)
}

func (s *Service) Promotions(ctx context.Context, orgID, employeeID string) ([]Record, error) {
	return s.ListByChangeType(ctx, orgID, employeeID, ChangePromotion)
}

func (s *Service) Transfers(ctx context.Context, orgID, employeeID string) ([]Record, error) {
	return s.ListByChangeType(ctx, orgID, employeeID, ChangeTransfer)
}

func (s *Service) SalaryRevisions(ctx context.Context, orgID, employeeID string) ([]Record, error) {
	return s.ListByChangeType(ctx, orgID, employeeID, ChangeSalaryRevision)
}

func (s *Service) Current(ctx context.Context, orgID, employeeID string) (*Record, error) {
	if err := s.requireEmployee(ctx, orgID, employeeID); err != nil {
		return nil, err
	}
	return s.store.Current(ctx, employeeID)
}

func (s *Service) requireEmployee(ctx context.Context, orgID, employeeID string) error {
	ok, err := s.store.EmployeeExists(ctx, orgID, employeeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEmployeeNotFound
	}
	return nil
}

// Create validates the record against the employee's existing timeline and
// appends it. When the record is current, every other record loses its
// current flag inside the same transaction.
func (s *Service) Create(ctx context.Context, orgID string, rec Record) (string, error) {
	return s.create(ctx, orgID, rec, nil)
}

func (s *Service) create(ctx context.Context, orgID string, rec Record, closePrevious *Record) (string, error) {
	if err := ValidateDates(rec); err != nil {
		return "", err
	}
	if err := s.requireEmployee(ctx, orgID, rec.EmployeeID); err != nil {
		return "", err
	}

	existing, err := s.store.ListByEmployee(ctx, rec.EmployeeID)
	if err != nil {
		return "", err
	}
	// The record being closed in the same transition is compared with its
	// post-close interval, not its open-ended one.
	if closePrevious != nil {
		for i := range existing {
			if existing[i].ID == closePrevious.ID {
				existing[i].EndDate = closePrevious.EndDate
				existing[i].IsCurrent = false
			}
		}
	}
	if overlapping := FindOverlapping(existing, rec); len(overlapping) > 0 {
		return "", ErrOverlappingInterval
	}

	return s.store.InsertWithTransition(ctx, rec, closePrevious)
}

// transition closes the employee's current record at effective-1 day, copies
// the unchanged fields forward onto next, and delegates to create.
func (s *Service) transition(ctx context.Context, orgID string, next Record) (string, error) {
	if err := ValidateDates(next); err != nil {
		return "", err
	}
	if err := s.requireEmployee(ctx, orgID, next.EmployeeID); err != nil {
		return "", err
	}

	current, err := s.store.Current(ctx, next.EmployeeID)
	if err != nil {
		return "", err
	}
	// Closing the current record at effective-1 only makes sense when the new
	// record starts after it. A backdated transition would persist the closed
	// record with end_date before its own effective date.
	if !next.EffectiveDate.After(current.EffectiveDate) {
		return "", ErrBackdatedTransition
	}

	if next.JobTitle == "" {
		next.JobTitle = current.JobTitle
	}
	if next.JobLevel == "" {
		next.JobLevel = current.JobLevel
	}
	if next.DepartmentID == "" {
		next.DepartmentID = current.DepartmentID
	}
	if next.ManagerID == "" {
		next.ManagerID = current.ManagerID
	}
	if next.Salary == nil {
		next.Salary = current.Salary
	}
	if next.Currency == "" {
		next.Currency = current.Currency
	}
	next.IsCurrent = true

	closed := *current
	endDate := CloseOutDate(next.EffectiveDate)
	closed.EndDate = &endDate

	return s.create(ctx, orgID, next, &closed)
}

// RecordJoining opens an employee's timeline. Unlike the other change types
// it does not require (or close) a current record.
func (s *Service) RecordJoining(ctx context.Context, orgID string, rec Record) (string, error) {
	rec.ChangeType = ChangeJoining
	rec.IsCurrent = true
	rec.EndDate = nil
	if _, err := s.store.Current(ctx, rec.EmployeeID); err == nil {
		return "", ErrOverlappingInterval
	} else if !errors.Is(err, ErrNoCurrentRecord) {
		return "", err
	}
	return s.create(ctx, orgID, rec, nil)
}

func (s *Service) RecordPromotion(ctx context.Context, orgID string, rec Record) (string, error) {
	rec.ChangeType = ChangePromotion
	return s.transition(ctx, orgID, rec)
}

func (s *Service) RecordTransfer(ctx context.Context, orgID string, rec Record) (string, error) {
	rec.ChangeType = ChangeTransfer
	return s.transition(ctx, orgID, rec)
}

func (s *Service) RecordSalaryRevision(ctx context.Context, orgID string, rec Record) (string, error) {
	rec.ChangeType = ChangeSalaryRevision
	return s.transition(ctx, orgID, rec)
}

func (s *Service) RecordRoleChange(ctx context.Context, orgID string, rec Record) (string, error) {
	rec.ChangeType = ChangeRoleChange
	return s.transition(ctx, orgID, rec)
}

// EffectiveAt returns the record whose interval contains the given date.
// Records come back in effective-date order and the timeline is
// non-overlapping, so at most one record can match.
func (s *Service) EffectiveAt(ctx context.Context, orgID, employeeID string, at time.Time) (*Record, error) {
	records, err := s.ListByEmployee(ctx, orgID, employeeID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		rec := records[i]
		if rec.EffectiveDate.After(at) {
			continue
		}
		if rec.EndDate == nil || !rec.EndDate.Before(at) {
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}
