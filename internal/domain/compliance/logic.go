package compliance

import (
	"fmt"
	"time"
)

// Evaluate applies one rule to one employee's facts. Unknown rule codes pass
// so that newly defined rules do not fail everyone before an evaluator
// exists for them.
func Evaluate(rule Rule, facts EmployeeFacts, now time.Time) Check {
	check := Check{
		RuleID:     rule.ID,
		RuleCode:   rule.Code,
		EmployeeID: facts.EmployeeID,
		Status:     CheckPassed,
		CheckedAt:  now,
	}

	switch rule.Code {
	case RuleProbationOverrun:
		if facts.Status == "PROBATION" && facts.ProbationEnd != nil && now.After(*facts.ProbationEnd) {
			check.Status = CheckFailed
			check.Details = fmt.Sprintf("probation ended %s without confirmation", facts.ProbationEnd.Format("2006-01-02"))
		}
	case RuleMissingBankAccount:
		if facts.Status != "TERMINATED" && !facts.HasActiveBank {
			check.Status = CheckFailed
			check.Details = "no active bank account on file"
		}
	case RuleMissingDepartment:
		if facts.Status != "TERMINATED" && !facts.HasDepartment {
			check.Status = CheckFailed
			check.Details = "employee is not assigned to a department"
		}
	case RuleTerminatedButCurrent:
		if facts.Status == "TERMINATED" && facts.HasCurrentRecord {
			check.Status = CheckFailed
			check.Details = "terminated employee still has a current employment history record"
		}
	}

	return check
}
