package employee

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusProbation, StatusActive) {
		t.Fatal("expected probation confirmation to be allowed")
	}
	if !CanTransition(StatusActive, StatusTerminated) {
		t.Fatal("expected termination from active to be allowed")
	}
	if !CanTransition(StatusTerminated, StatusActive) {
		t.Fatal("expected reactivation to be allowed")
	}
	if CanTransition(StatusTerminated, StatusNoticePeriod) {
		t.Fatal("expected terminated -> notice period to be rejected")
	}
	if CanTransition(StatusProbation, StatusOnLeave) {
		t.Fatal("expected probation -> on leave to be rejected")
	}
}

func TestIsOnProbation(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	emp := Employee{Status: StatusProbation, ProbationEnd: &end}
	if !emp.IsOnProbation(now) {
		t.Fatal("expected employee to be on probation before probation end")
	}

	past := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	emp.ProbationEnd = &past
	if emp.IsOnProbation(now) {
		t.Fatal("expected probation to have lapsed")
	}

	emp = Employee{Status: StatusActive, ProbationEnd: &end}
	if emp.IsOnProbation(now) {
		t.Fatal("active employee is not on probation")
	}
}

func TestFullName(t *testing.T) {
	if got := (Employee{FirstName: "Asha", LastName: "Rao"}).FullName(); got != "Asha Rao" {
		t.Fatalf("unexpected full name: %q", got)
	}
	if got := (Employee{LastName: "Rao"}).FullName(); got != "Rao" {
		t.Fatalf("unexpected full name: %q", got)
	}
}
