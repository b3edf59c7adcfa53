// Package clock provides an injectable time source so date arithmetic in the
// transition engine stays deterministic under test.
package clock

import "time"

// Clock supplies the current instant and the current civil date.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

func (System) Today() time.Time {
	return Midnight(time.Now().UTC())
}

// Fixed always reports the same instant.
type Fixed struct {
	Instant time.Time
}

// NewFixed returns a Fixed clock pinned at t.
func NewFixed(t time.Time) Fixed {
	return Fixed{Instant: t.UTC()}
}

func (f Fixed) Now() time.Time { return f.Instant }

func (f Fixed) Today() time.Time { return Midnight(f.Instant) }

// Midnight truncates t to the start of its UTC day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
