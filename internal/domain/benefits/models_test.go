package benefits

import (
	"testing"
	"time"
)

func TestPlanIsExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	openEnded := Plan{}
	if openEnded.IsExpired(now) {
		t.Fatal("plan without validTo never expires")
	}

	past := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	if !(Plan{ValidTo: &past}).IsExpired(now) {
		t.Fatal("plan past validTo should be expired")
	}

	today := now
	if (Plan{ValidTo: &today}).IsExpired(now) {
		t.Fatal("plan expiring today is still valid")
	}
}
