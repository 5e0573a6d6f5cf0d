package model

import "time"

// Interval is a half-open occupancy window [Start, Start+Duration). A hearing
// ending at 10:00 and another starting at 10:00 can share a resource.
type Interval struct {
	Start         time.Time
	DurationHours float64
}

// NewInterval builds an Interval. A zero or negative duration is a caller
// error and is rejected.
func NewInterval(start time.Time, durationHours float64) (Interval, error) {
	if durationHours <= 0 {
		return Interval{}, &ValidationError{Field: "duration_hours", Reason: "must be positive"}
	}
	return Interval{Start: start, DurationHours: durationHours}, nil
}

// End returns the exclusive end of the interval.
func (i Interval) End() time.Time {
	return i.Start.Add(time.Duration(i.DurationHours * float64(time.Hour)))
}

// Overlaps reports whether two half-open intervals intersect.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End()) && other.Start.Before(i.End())
}
