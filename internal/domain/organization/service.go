package organization

import (
	"context"
	"errors"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) GetDepartment(ctx context.Context, orgID, departmentID string) (*Department, error) {
	return s.store.GetDepartment(ctx, orgID, departmentID)
}

func (s *Service) ListDepartments(ctx context.Context, orgID string) ([]Department, error) {
	return s.store.ListDepartments(ctx, orgID)
}

func (s *Service) checkDepartment(ctx context.Context, dep Department, excludeID string) error {
	codeTaken, nameTaken, err := s.store.DepartmentCodeOrNameTaken(ctx, dep.OrganizationID, dep.Code, dep.Name, excludeID)
	if err != nil {
		return err
	}
	if codeTaken {
		return ErrDuplicateCode
	}
	if nameTaken {
		return ErrDuplicateName
	}

	if dep.ManagerID != "" {
		ok, err := s.store.EmployeeExists(ctx, dep.OrganizationID, dep.ManagerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrManagerNotFound
		}
	}

	if dep.ParentID != "" {
		if dep.ParentID == excludeID {
			return ErrSelfParent
		}
		parent, err := s.store.GetDepartment(ctx, dep.OrganizationID, dep.ParentID)
		if err != nil {
			if errors.Is(err, ErrDepartmentNotFound) {
				return ErrParentNotFound
			}
			return err
		}
		if parent.OrganizationID != dep.OrganizationID {
			return ErrParentOutsideOrg
		}
	}
	return nil
}

func (s *Service) CreateDepartment(ctx context.Context, dep Department) (string, error) {
	if err := s.checkDepartment(ctx, dep, ""); err != nil {
		return "", err
	}
	return s.store.CreateDepartment(ctx, dep)
}

func (s *Service) UpdateDepartment(ctx context.Context, orgID, departmentID string, dep Department) error {
	dep.OrganizationID = orgID
	if _, err := s.store.GetDepartment(ctx, orgID, departmentID); err != nil {
		return err
	}
	if err := s.checkDepartment(ctx, dep, departmentID); err != nil {
		return err
	}

	if dep.ParentID != "" {
		all, err := s.store.ListDepartments(ctx, orgID)
		if err != nil {
			return err
		}
		parents := make(map[string]string, len(all))
		for _, d := range all {
			parents[d.ID] = d.ParentID
		}
		if WouldCreateCycle(parents, departmentID, dep.ParentID) {
			return ErrCircularHierarchy
		}
	}

	return s.store.UpdateDepartment(ctx, orgID, departmentID, dep)
}

func (s *Service) DeleteDepartment(ctx context.Context, orgID, departmentID string) error {
	if _, err := s.store.GetDepartment(ctx, orgID, departmentID); err != nil {
		return err
	}
	count, err := s.store.SubDepartmentCount(ctx, orgID, departmentID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasSubDepartments
	}
	return s.store.DeleteDepartment(ctx, orgID, departmentID)
}

// Hierarchy returns the full department forest for the organization. The
// write-side cycle guard keeps the flat slice safe to assemble.
func (s *Service) Hierarchy(ctx context.Context, orgID string) ([]*DepartmentNode, error) {
	departments, err := s.store.ListDepartments(ctx, orgID)
	if err != nil {
		return nil, err
	}
	managers, err := s.store.ManagerSummaries(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return BuildHierarchy(departments, managers), nil
}

func (s *Service) GetLocation(ctx context.Context, orgID, locationID string) (*Location, error) {
	return s.store.GetLocation(ctx, orgID, locationID)
}

func (s *Service) ListLocations(ctx context.Context, orgID string) ([]Location, error) {
	return s.store.ListLocations(ctx, orgID)
}

func (s *Service) CreateLocation(ctx context.Context, loc Location) (string, error) {
	taken, err := s.store.LocationNameTaken(ctx, loc.OrganizationID, loc.Name, "")
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrDuplicateLocationName
	}
	return s.store.CreateLocation(ctx, loc)
}

func (s *Service) DeleteLocation(ctx context.Context, orgID, locationID string) error {
	return s.store.DeleteLocation(ctx, orgID, locationID)
}
