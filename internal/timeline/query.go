package timeline

import "time"

// Interval is any record carrying a date range.
type Interval interface {
	Range() DateRange
}

// OpenInterval returns the record with no finish date, if any. The non-overlap
// invariant guarantees at most one exists per subject and role.
func OpenInterval[T Interval](records []T) (T, bool) {
	var zero T
	for _, rec := range records {
		if rec.Range().Open() {
			return rec, true
		}
	}
	return zero, false
}

// Ongoing returns the record whose range contains the given date. Ties are
// broken by earliest start.
func Ongoing[T Interval](records []T, at time.Time) (T, bool) {
	var zero T
	found := false
	var best T
	for _, rec := range records {
		if !rec.Range().ContainsDate(at) {
			continue
		}
		if !found || rec.Range().StartedOn.Before(best.Range().StartedOn) {
			best = rec
			found = true
		}
	}
	if !found {
		return zero, false
	}
	return best, true
}

// CurrentOrNext returns the record ongoing at the given date, or failing that
// the earliest record starting after it. Earliest start wins ties.
func CurrentOrNext[T Interval](records []T, at time.Time) (T, bool) {
	if rec, ok := Ongoing(records, at); ok {
		return rec, true
	}
	var zero T
	found := false
	var best T
	for _, rec := range records {
		if !rec.Range().StartedOn.After(at) {
			continue
		}
		if !found || rec.Range().StartedOn.Before(best.Range().StartedOn) {
			best = rec
			found = true
		}
	}
	if !found {
		return zero, false
	}
	return best, true
}

// CheckOpen verifies that a new open-ended range starting on startedOn can be
// added alongside the existing records without breaking the non-overlap
// invariant. The candidate range is validated first.
func CheckOpen[T Interval](records []T, startedOn time.Time) error {
	candidate := NewRange(startedOn)
	if err := candidate.Validate(); err != nil {
		return err
	}
	for _, rec := range records {
		if rec.Range().Overlaps(candidate) {
			return OverlapError{Conflict: rec.Range()}
		}
	}
	return nil
}
