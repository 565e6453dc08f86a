package employee

import "time"

const (
	StatusActive       = "ACTIVE"
	StatusProbation    = "PROBATION"
	StatusNoticePeriod = "NOTICE_PERIOD"
	StatusOnLeave      = "ON_LEAVE"
	StatusTerminated   = "TERMINATED"
)

const (
	TypeFullTime   = "FULL_TIME"
	TypePartTime   = "PART_TIME"
	TypeContract   = "CONTRACT"
	TypeInternship = "INTERNSHIP"
)

var Statuses = []string{StatusActive, StatusProbation, StatusNoticePeriod, StatusOnLeave, StatusTerminated}

var EmploymentTypes = []string{TypeFullTime, TypePartTime, TypeContract, TypeInternship}

type Employee struct {
	ID              string     `json:"id"`
	OrganizationID  string     `json:"organizationId"`
	EmployeeNumber  string     `json:"employeeNumber"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Status          string     `json:"status"`
	EmploymentType  string     `json:"employmentType"`
	JobTitle        string     `json:"jobTitle"`
	JobLevel        string     `json:"jobLevel"`
	Salary          *float64   `json:"salary,omitempty"`
	Currency        string     `json:"currency"`
	HireDate        *time.Time `json:"hireDate,omitempty"`
	TerminationDate *time.Time `json:"terminationDate,omitempty"`
	ProbationEnd    *time.Time `json:"probationEndDate,omitempty"`
	ManagerID       string     `json:"managerId"`
	DepartmentID    string     `json:"departmentId"`
	LocationID      string     `json:"locationId"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

func (e Employee) IsOnProbation(now time.Time) bool {
	if e.Status != StatusProbation {
		return false
	}
	return e.ProbationEnd == nil || now.Before(*e.ProbationEnd)
}
