package history

import "errors"

var (
	ErrNotFound              = errors.New("employment history record not found")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeRequired      = errors.New("employee is required")
	ErrEffectiveDateRequired = errors.New("effective date is required")
	ErrEndBeforeEffective    = errors.New("end date is before effective date")
	ErrBackdatedTransition   = errors.New("effective date must be after the current record's effective date")
	ErrOverlappingInterval   = errors.New("record overlaps an existing employment history interval")
	ErrNoCurrentRecord       = errors.New("employee has no current employment history record")
	ErrInvalidChangeType     = errors.New("change type is invalid")
)
