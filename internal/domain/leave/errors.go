package leave

import "errors"

var (
	ErrRequestNotFound    = errors.New("leave request not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrInvalidLeaveType   = errors.New("unknown leave type")
	ErrEndBeforeStart     = errors.New("end date before start date")
	ErrOverlappingRequest = errors.New("an overlapping leave request already exists")
	ErrNotPending         = errors.New("leave request is not pending")
	ErrCancelAfterDecide  = errors.New("only pending requests can be cancelled")
)
