package history

import "time"

// openEndedHorizon is how far an open-ended record extends for interval
// comparison.
const openEndedHorizonYears = 100

func horizon(effective time.Time, end *time.Time) time.Time {
	if end != nil {
		return *end
	}
	return effective.AddDate(openEndedHorizonYears, 0, 0)
}

// Intersects reports whether the two inclusive intervals share any day.
// A nil end means open-ended and is extended by the horizon.
func Intersects(aStart time.Time, aEnd *time.Time, bStart time.Time, bEnd *time.Time) bool {
	return !horizon(aStart, aEnd).Before(bStart) && !horizon(bStart, bEnd).Before(aStart)
}

// FindOverlapping returns the existing records whose intervals intersect the
// candidate's. A record with the candidate's own id is skipped, which makes
// updates self-exclusive.
func FindOverlapping(existing []Record, candidate Record) []Record {
	var out []Record
	for _, rec := range existing {
		if candidate.ID != "" && rec.ID == candidate.ID {
			continue
		}
		if Intersects(rec.EffectiveDate, rec.EndDate, candidate.EffectiveDate, candidate.EndDate) {
			out = append(out, rec)
		}
	}
	return out
}

// CloseOutDate is the end date assigned to the previous current record when
// a new record takes effect: the day before the new effective date.
func CloseOutDate(newEffective time.Time) time.Time {
	return newEffective.AddDate(0, 0, -1)
}

// ValidateDates applies the presence and ordering rules for a record.
func ValidateDates(rec Record) error {
	if rec.EmployeeID == "" {
		return ErrEmployeeRequired
	}
	if rec.EffectiveDate.IsZero() {
		return ErrEffectiveDateRequired
	}
	if rec.EndDate != nil && rec.EndDate.Before(rec.EffectiveDate) {
		return ErrEndBeforeEffective
	}
	return nil
}
