package compliance

import "time"

const (
	SeverityLow    = "LOW"
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"
)

const (
	CheckPassed = "PASSED"
	CheckFailed = "FAILED"
)

// Rule codes evaluated by RunChecks.
const (
	RuleProbationOverrun     = "PROBATION_OVERRUN"
	RuleMissingBankAccount   = "MISSING_BANK_ACCOUNT"
	RuleMissingDepartment    = "MISSING_DEPARTMENT"
	RuleTerminatedButCurrent = "TERMINATED_BUT_CURRENT"
)

type Rule struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Severity       string    `json:"severity"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Check struct {
	ID         string    `json:"id"`
	RuleID     string    `json:"ruleId"`
	RuleCode   string    `json:"ruleCode"`
	EmployeeID string    `json:"employeeId"`
	Status     string    `json:"status"`
	Details    string    `json:"details"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// EmployeeFacts is the projection of an employee that rules evaluate.
type EmployeeFacts struct {
	EmployeeID       string
	EmployeeName     string
	Status           string
	ProbationEnd     *time.Time
	HasDepartment    bool
	HasActiveBank    bool
	HasCurrentRecord bool
}
