package recruitment

import "time"

const (
	PostingOpen   = "OPEN"
	PostingClosed = "CLOSED"
)

// Application stages in pipeline order. REJECTED sits outside the pipeline
// and is reachable from any non-terminal stage.
const (
	StageApplied   = "APPLIED"
	StageScreening = "SCREENING"
	StageInterview = "INTERVIEW"
	StageOffer     = "OFFER"
	StageHired     = "HIRED"
	StageRejected  = "REJECTED"
)

const (
	InterviewScheduled = "SCHEDULED"
	InterviewCompleted = "COMPLETED"
	InterviewCancelled = "CANCELLED"
)

type JobPosting struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DepartmentID   *string    `json:"departmentId,omitempty"`
	LocationID     *string    `json:"locationId,omitempty"`
	EmploymentType string     `json:"employmentType"`
	Status         string     `json:"status"`
	OpenedAt       time.Time  `json:"openedAt"`
	ClosedAt       *time.Time `json:"closedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type Candidate struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	ResumeURL      string    `json:"resumeUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Application struct {
	ID          string    `json:"id"`
	PostingID   string    `json:"postingId"`
	CandidateID string    `json:"candidateId"`
	Stage       string    `json:"stage"`
	Notes       string    `json:"notes,omitempty"`
	AppliedAt   time.Time `json:"appliedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Interview struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"applicationId"`
	InterviewerID *string   `json:"interviewerId,omitempty"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	Mode          string    `json:"mode,omitempty"`
	Status        string    `json:"status"`
	Feedback      string    `json:"feedback,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
