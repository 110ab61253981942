package domain

import (
	"errors"
	"time"
)

var ErrInvalidTimeRange = errors.New("end time must be after start time")

// TimeRange is a half-open interval [Start, End) of calendar time.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange creates a validated time range.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open ranges share any instant. Ranges
// that merely touch at a boundary do not overlap, so back-to-back blocks
// are allowed.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether t falls within the range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
