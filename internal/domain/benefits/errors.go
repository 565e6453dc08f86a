package benefits

import "errors"

var (
	ErrPlanNotFound       = errors.New("benefit plan not found")
	ErrEnrollmentNotFound = errors.New("benefit enrollment not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrPlanExpired        = errors.New("benefit plan is expired")
	ErrAlreadyEnrolled    = errors.New("employee already has an active enrollment in plan")
	ErrEnrollmentClosed   = errors.New("benefit enrollment is not active")
)
