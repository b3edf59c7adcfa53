// Package timeline enforces the invariants shared by every family of
// date-ranged records: placement, training, mentorship and induction periods.
// Ranges are inclusive of both endpoints when asking whether a record is
// ongoing, and half-open when checking for conflicts, so a record closed on a
// given day and a successor starting that same day do not collide.
package timeline

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrOverlap indicates a new range would collide with an existing one
	// for the same subject and role.
	ErrOverlap = errors.New("timeline: overlapping period")
	// ErrAlreadyClosed indicates an attempt to close a finished range.
	ErrAlreadyClosed = errors.New("timeline: period already finished")
	// ErrInvalidRange indicates a range whose finish precedes its start, or
	// a missing start date.
	ErrInvalidRange = errors.New("timeline: invalid period range")
)

// OverlapError carries the range that blocked a new open.
type OverlapError struct {
	Conflict DateRange
}

func (e OverlapError) Error() string {
	return fmt.Sprintf("timeline: overlaps period starting %s", e.Conflict.StartedOn.Format("2006-01-02"))
}

func (e OverlapError) Unwrap() error { return ErrOverlap }

// DateRange is a period of days with a required start and an optional finish.
type DateRange struct {
	StartedOn  time.Time
	FinishedOn *time.Time
}

// NewRange builds an open-ended range starting on startedOn.
func NewRange(startedOn time.Time) DateRange {
	return DateRange{StartedOn: startedOn}
}

// Validate checks the structural invariants of the range.
func (r DateRange) Validate() error {
	if r.StartedOn.IsZero() {
		return fmt.Errorf("%w: started_on required", ErrInvalidRange)
	}
	if r.FinishedOn != nil && r.FinishedOn.Before(r.StartedOn) {
		return fmt.Errorf("%w: finished_on before started_on", ErrInvalidRange)
	}
	return nil
}

// Open reports whether the range has no finish date.
func (r DateRange) Open() bool { return r.FinishedOn == nil }

// ContainsDate reports whether the range is ongoing at the given date. A
// finished range is still ongoing on its finish date.
func (r DateRange) ContainsDate(at time.Time) bool {
	if r.StartedOn.After(at) {
		return false
	}
	return r.FinishedOn == nil || !r.FinishedOn.Before(at)
}

// Overlaps reports whether two ranges conflict. Finish dates are treated as
// exclusive so a successor may start on the day its predecessor finished.
func (r DateRange) Overlaps(other DateRange) bool {
	if r.FinishedOn != nil && !other.StartedOn.Before(*r.FinishedOn) {
		return false
	}
	if other.FinishedOn != nil && !r.StartedOn.Before(*other.FinishedOn) {
		return false
	}
	return true
}

// Close sets the finish date. It is the sole mutator of FinishedOn.
func (r *DateRange) Close(finishedOn time.Time) error {
	if r.FinishedOn != nil {
		return ErrAlreadyClosed
	}
	if finishedOn.Before(r.StartedOn) {
		return fmt.Errorf("%w: finished_on before started_on", ErrInvalidRange)
	}
	r.FinishedOn = &finishedOn
	return nil
}
