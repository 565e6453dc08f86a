package training

import "errors"

var (
	ErrProgramNotFound    = errors.New("training program not found")
	ErrProgramFull        = errors.New("training program is at capacity")
	ErrProgramEnded       = errors.New("training program has already ended")
	ErrAlreadyEnrolled    = errors.New("employee is already enrolled in this program")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrInvalidCapacity    = errors.New("capacity must be positive")
	ErrInvalidDates       = errors.New("end date cannot be before start date")
)
