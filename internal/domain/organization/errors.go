package organization

import "errors"

var (
	ErrDepartmentNotFound    = errors.New("department not found")
	ErrLocationNotFound      = errors.New("location not found")
	ErrParentNotFound        = errors.New("parent department not found")
	ErrDuplicateCode         = errors.New("department code already exists in organization")
	ErrDuplicateName         = errors.New("department name already exists in organization")
	ErrDuplicateLocationName = errors.New("location name already exists in organization")
	ErrSelfParent            = errors.New("department cannot be its own parent")
	ErrCircularHierarchy     = errors.New("department parent would create circular hierarchy")
	ErrHasSubDepartments     = errors.New("department has sub-departments")
	ErrManagerNotFound       = errors.New("manager not found")
	ErrParentOutsideOrg      = errors.New("parent department belongs to another organization")
)
