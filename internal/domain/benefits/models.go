package benefits

import "time"

const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentEnded     = "ENDED"
	EnrollmentCancelled = "CANCELLED"
)

type Plan struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Name           string     `json:"name"`
	PlanType       string     `json:"planType"`
	Provider       string     `json:"provider"`
	ValidFrom      *time.Time `json:"validFrom,omitempty"`
	ValidTo        *time.Time `json:"validTo,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// IsExpired reports whether the plan's validity window has closed.
func (p Plan) IsExpired(now time.Time) bool {
	return p.ValidTo != nil && now.After(*p.ValidTo)
}

type Enrollment struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	PlanID     string     `json:"planId"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}
