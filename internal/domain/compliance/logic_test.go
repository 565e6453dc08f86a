package compliance

import (
	"testing"
	"time"
)

func TestEvaluateProbationOverrun(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rule := Rule{ID: "r1", Code: RuleProbationOverrun}

	past := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	check := Evaluate(rule, EmployeeFacts{EmployeeID: "emp-1", Status: "PROBATION", ProbationEnd: &past}, now)
	if check.Status != CheckFailed {
		t.Fatalf("expected FAILED, got %s", check.Status)
	}

	future := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	check = Evaluate(rule, EmployeeFacts{EmployeeID: "emp-1", Status: "PROBATION", ProbationEnd: &future}, now)
	if check.Status != CheckPassed {
		t.Fatalf("expected PASSED before probation end, got %s", check.Status)
	}

	check = Evaluate(rule, EmployeeFacts{EmployeeID: "emp-1", Status: "ACTIVE", ProbationEnd: &past}, now)
	if check.Status != CheckPassed {
		t.Fatalf("confirmed employee should pass, got %s", check.Status)
	}
}

func TestEvaluateMissingBankAccount(t *testing.T) {
	now := time.Now()
	rule := Rule{Code: RuleMissingBankAccount}

	check := Evaluate(rule, EmployeeFacts{Status: "ACTIVE", HasActiveBank: false}, now)
	if check.Status != CheckFailed {
		t.Fatalf("expected FAILED, got %s", check.Status)
	}

	check = Evaluate(rule, EmployeeFacts{Status: "TERMINATED", HasActiveBank: false}, now)
	if check.Status != CheckPassed {
		t.Fatalf("terminated employees are exempt, got %s", check.Status)
	}
}

func TestEvaluateTerminatedButCurrent(t *testing.T) {
	now := time.Now()
	rule := Rule{Code: RuleTerminatedButCurrent}

	check := Evaluate(rule, EmployeeFacts{Status: "TERMINATED", HasCurrentRecord: true}, now)
	if check.Status != CheckFailed {
		t.Fatalf("expected FAILED, got %s", check.Status)
	}

	check = Evaluate(rule, EmployeeFacts{Status: "ACTIVE", HasCurrentRecord: true}, now)
	if check.Status != CheckPassed {
		t.Fatalf("expected PASSED, got %s", check.Status)
	}
}

func TestEvaluateUnknownRulePasses(t *testing.T) {
	check := Evaluate(Rule{Code: "FUTURE_RULE"}, EmployeeFacts{}, time.Now())
	if check.Status != CheckPassed {
		t.Fatalf("unknown rules must pass, got %s", check.Status)
	}
}
