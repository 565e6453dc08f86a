package performance

import "time"

const (
	CycleOpen   = "OPEN"
	CycleClosed = "CLOSED"
)

const (
	ReviewDraft     = "DRAFT"
	ReviewSubmitted = "SUBMITTED"
)

const (
	GoalNotStarted = "NOT_STARTED"
	GoalInProgress = "IN_PROGRESS"
	GoalCompleted  = "COMPLETED"
	GoalCancelled  = "CANCELLED"
)

const (
	MinRating = 1
	MaxRating = 5
)

type ReviewCycle struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Name           string     `json:"name"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	Status         string     `json:"status"`
	ClosedAt       *time.Time `json:"closedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type Review struct {
	ID          string     `json:"id"`
	CycleID     string     `json:"cycleId"`
	EmployeeID  string     `json:"employeeId"`
	ReviewerID  *string    `json:"reviewerId,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	Comments    string     `json:"comments,omitempty"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Goal struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	CycleID     *string    `json:"cycleId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CycleSummary struct {
	CycleID              string         `json:"cycleId"`
	GoalsTotal           int            `json:"goalsTotal"`
	GoalsCompleted       int            `json:"goalsCompleted"`
	ReviewsTotal         int            `json:"reviewsTotal"`
	ReviewsSubmitted     int            `json:"reviewsSubmitted"`
	ReviewCompletionRate float64        `json:"reviewCompletionRate"`
	RatingDistribution   map[string]int `json:"ratingDistribution"`
}
