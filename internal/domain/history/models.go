package history

import "time"

const (
	ChangeJoining        = "JOINING"
	ChangePromotion      = "PROMOTION"
	ChangeTransfer       = "TRANSFER"
	ChangeSalaryRevision = "SALARY_REVISION"
	ChangeRoleChange     = "ROLE_CHANGE"
)

var ChangeTypes = []string{ChangeJoining, ChangePromotion, ChangeTransfer, ChangeSalaryRevision, ChangeRoleChange}

type Record struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	EffectiveDate time.Time  `json:"effectiveDate"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	JobTitle      string     `json:"jobTitle"`
	JobLevel      string     `json:"jobLevel"`
	DepartmentID  string     `json:"departmentId"`
	ManagerID     string     `json:"managerId"`
	Salary        *float64   `json:"salary,omitempty"`
	Currency      string     `json:"currency"`
	ChangeType    string     `json:"changeType"`
	ChangeReason  string     `json:"changeReason"`
	ChangedBy     string     `json:"changedBy"`
	IsCurrent     bool       `json:"isCurrent"`
	CreatedAt     time.Time  `json:"createdAt"`
}
