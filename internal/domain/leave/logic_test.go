package leave

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateDays(t *testing.T) {
	days, err := CalculateDays(date(2024, 6, 3), date(2024, 6, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 5 {
		t.Fatalf("expected 5 days, got %v", days)
	}

	days, err = CalculateDays(date(2024, 6, 3), date(2024, 6, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("single day request counts as 1, got %v", days)
	}

	if _, err := CalculateDays(date(2024, 6, 7), date(2024, 6, 3)); !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"disjoint", date(2024, 6, 1), date(2024, 6, 5), date(2024, 6, 10), date(2024, 6, 12), false},
		{"touching boundary", date(2024, 6, 1), date(2024, 6, 5), date(2024, 6, 5), date(2024, 6, 8), true},
		{"contained", date(2024, 6, 1), date(2024, 6, 30), date(2024, 6, 10), date(2024, 6, 12), true},
		{"reversed order", date(2024, 6, 10), date(2024, 6, 12), date(2024, 6, 1), date(2024, 6, 30), true},
	}

	for _, c := range cases {
		if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
			t.Errorf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}
