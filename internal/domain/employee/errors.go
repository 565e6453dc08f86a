package employee

import "errors"

var (
	ErrNotFound                = errors.New("employee not found")
	ErrDuplicateEmployeeNumber = errors.New("employee number already exists in organization")
	ErrHasDirectReports        = errors.New("employee has direct reports")
	ErrInvalidStatusTransition = errors.New("invalid employment status transition")
	ErrManagerNotFound         = errors.New("manager not found")
)
