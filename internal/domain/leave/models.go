package leave

import "time"

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const (
	TypeAnnual    = "ANNUAL"
	TypeSick      = "SICK"
	TypeCasual    = "CASUAL"
	TypeMaternity = "MATERNITY"
	TypePaternity = "PATERNITY"
	TypeUnpaid    = "UNPAID"
)

type Request struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	LeaveType  string     `json:"leaveType"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    time.Time  `json:"endDate"`
	Days       float64    `json:"days"`
	Reason     string     `json:"reason,omitempty"`
	Status     string     `json:"status"`
	DecidedBy  *string    `json:"decidedBy,omitempty"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func ValidLeaveType(leaveType string) bool {
	switch leaveType {
	case TypeAnnual, TypeSick, TypeCasual, TypeMaternity, TypePaternity, TypeUnpaid:
		return true
	}
	return false
}
