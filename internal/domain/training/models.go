package training

import "time"

const (
	EnrollmentEnrolled  = "ENROLLED"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentCancelled = "CANCELLED"
)

type Program struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Trainer        string    `json:"trainer,omitempty"`
	Capacity       int       `json:"capacity"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Enrollment struct {
	ID          string     `json:"id"`
	ProgramID   string     `json:"programId"`
	EmployeeID  string     `json:"employeeId"`
	Status      string     `json:"status"`
	Score       *int       `json:"score,omitempty"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
