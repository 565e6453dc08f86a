package history

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func TestIntersects(t *testing.T) {
	// closed vs closed, touching boundary counts as overlap
	if !Intersects(day(2024, 1, 1), dayPtr(2024, 3, 1), day(2024, 3, 1), dayPtr(2024, 6, 1)) {
		t.Fatal("shared boundary day should intersect")
	}
	if Intersects(day(2024, 1, 1), dayPtr(2024, 2, 29), day(2024, 3, 1), dayPtr(2024, 6, 1)) {
		t.Fatal("adjacent intervals should not intersect")
	}

	// open-ended record swallows any later interval
	if !Intersects(day(2024, 1, 1), nil, day(2030, 1, 1), dayPtr(2030, 12, 31)) {
		t.Fatal("open-ended interval should intersect later records")
	}
	// but not records that ended before it started
	if Intersects(day(2024, 1, 1), nil, day(2020, 1, 1), dayPtr(2023, 12, 31)) {
		t.Fatal("open-ended interval should not reach backwards")
	}
}

func TestFindOverlapping(t *testing.T) {
	existing := []Record{
		{ID: "h1", EffectiveDate: day(2023, 1, 1), EndDate: dayPtr(2023, 12, 31)},
		{ID: "h2", EffectiveDate: day(2024, 1, 1), EndDate: nil},
	}

	overlaps := FindOverlapping(existing, Record{EffectiveDate: day(2024, 6, 1), EndDate: nil})
	if len(overlaps) != 1 || overlaps[0].ID != "h2" {
		t.Fatalf("expected overlap with h2 only, got %+v", overlaps)
	}

	// updating h2 itself must not conflict with h2
	overlaps = FindOverlapping(existing, Record{ID: "h2", EffectiveDate: day(2024, 6, 1), EndDate: nil})
	if len(overlaps) != 0 {
		t.Fatalf("expected self-exclusion on update, got %+v", overlaps)
	}

	overlaps = FindOverlapping(existing, Record{EffectiveDate: day(2030, 1, 1), EndDate: dayPtr(2030, 6, 1)})
	if len(overlaps) != 1 || overlaps[0].ID != "h2" {
		t.Fatalf("open-ended current record should conflict, got %+v", overlaps)
	}
}

func TestCloseOutDate(t *testing.T) {
	got := CloseOutDate(day(2024, 6, 1))
	if !got.Equal(day(2024, 5, 31)) {
		t.Fatalf("expected 2024-05-31, got %s", got.Format("2006-01-02"))
	}
}

func TestValidateDates(t *testing.T) {
	if err := ValidateDates(Record{EffectiveDate: day(2024, 1, 1)}); !errors.Is(err, ErrEmployeeRequired) {
		t.Fatalf("expected ErrEmployeeRequired, got %v", err)
	}
	if err := ValidateDates(Record{EmployeeID: "emp-1"}); !errors.Is(err, ErrEffectiveDateRequired) {
		t.Fatalf("expected ErrEffectiveDateRequired, got %v", err)
	}
	rec := Record{EmployeeID: "emp-1", EffectiveDate: day(2024, 3, 1), EndDate: dayPtr(2024, 2, 1)}
	if err := ValidateDates(rec); !errors.Is(err, ErrEndBeforeEffective) {
		t.Fatalf("expected ErrEndBeforeEffective, got %v", err)
	}
	rec.EndDate = dayPtr(2024, 3, 1)
	if err := ValidateDates(rec); err != nil {
		t.Fatalf("single-day interval should be valid: %v", err)
	}
}
