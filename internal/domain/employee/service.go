package employee

import (
	"context"
	"time"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, orgID, employeeID string) (*Employee, error) {
	return s.store.Get(ctx, orgID, employeeID)
}

func (s *Service) List(ctx context.Context, orgID string, limit, offset int) ([]Employee, error) {
	return s.store.List(ctx, orgID, limit, offset)
}

func (s *Service) Create(ctx context.Context, emp Employee) (string, error) {
	exists, err := s.store.ExistsByNumber(ctx, emp.OrganizationID, emp.EmployeeNumber, "")
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrDuplicateEmployeeNumber
	}
	if emp.ManagerID != "" {
		ok, err := s.store.Exists(ctx, emp.OrganizationID, emp.ManagerID)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrManagerNotFound
		}
	}
	if emp.Status == "" {
		emp.Status = StatusProbation
	}
	return s.store.Create(ctx, emp)
}

func (s *Service) Update(ctx context.Context, orgID, employeeID string, emp Employee) error {
	exists, err := s.store.ExistsByNumber(ctx, orgID, emp.EmployeeNumber, employeeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateEmployeeNumber
	}
	if emp.ManagerID != "" {
		ok, err := s.store.Exists(ctx, orgID, emp.ManagerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrManagerNotFound
		}
	}
	return s.store.Update(ctx, orgID, employeeID, emp)
}

func (s *Service) transition(ctx context.Context, orgID, employeeID, to string, terminationDate any) error {
	emp, err := s.store.Get(ctx, orgID, employeeID)
	if err != nil {
		return err
	}
	if !CanTransition(emp.Status, to) {
		return ErrInvalidStatusTransition
	}
	return s.store.UpdateStatus(ctx, orgID, employeeID, to, terminationDate)
}

func (s *Service) Terminate(ctx context.Context, orgID, employeeID string, terminationDate time.Time) error {
	return s.transition(ctx, orgID, employeeID, StatusTerminated, terminationDate)
}

func (s *Service) Reactivate(ctx context.Context, orgID, employeeID string) error {
	return s.transition(ctx, orgID, employeeID, StatusActive, nil)
}

// ConfirmProbation moves a PROBATION employee to ACTIVE.
func (s *Service) ConfirmProbation(ctx context.Context, orgID, employeeID string) error {
	emp, err := s.store.Get(ctx, orgID, employeeID)
	if err != nil {
		return err
	}
	if emp.Status != StatusProbation {
		return ErrInvalidStatusTransition
	}
	return s.store.UpdateStatus(ctx, orgID, employeeID, StatusActive, nil)
}

func (s *Service) Delete(ctx context.Context, orgID, employeeID string) error {
	count, err := s.store.DirectReportCount(ctx, orgID, employeeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasDirectReports
	}
	return s.store.Delete(ctx, orgID, employeeID)
}

// ConfirmDueProbations promotes every probation employee whose probation
// end date has passed. Used by the scheduled sweep.
func (s *Service) ConfirmDueProbations(ctx context.Context, orgID string) (int, error) {
	due, err := s.store.ProbationDue(ctx, orgID)
	if err != nil {
		return 0, err
	}
	confirmed := 0
	for _, emp := range due {
		if err := s.store.UpdateStatus(ctx, orgID, emp.ID, StatusActive, nil); err != nil {
			return confirmed, err
		}
		confirmed++
	}
	return confirmed, nil
}
