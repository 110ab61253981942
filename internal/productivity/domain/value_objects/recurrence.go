package value_objects

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Frequency is the repeat cadence of a recurring task.
type Frequency int

const (
	FrequencyNone Frequency = iota
	FrequencyDaily
	FrequencyWeekly
	FrequencyMonthly
)

var (
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")
	ErrInvalidInterval  = errors.New("recurrence interval must be at least 1")
)

var frequencyNames = map[Frequency]string{
	FrequencyNone:    "none",
	FrequencyDaily:   "daily",
	FrequencyWeekly:  "weekly",
	FrequencyMonthly: "monthly",
}

var frequencyValues = map[string]Frequency{
	"none":    FrequencyNone,
	"daily":   FrequencyDaily,
	"weekly":  FrequencyWeekly,
	"monthly": FrequencyMonthly,
}

// String returns the string representation of the frequency.
func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return "unknown"
}

// Recurrence describes how a task repeats after completion.
type Recurrence struct {
	frequency Frequency
	interval  int
}

// NoRecurrence returns the zero recurrence (task does not repeat).
func NoRecurrence() Recurrence {
	return Recurrence{frequency: FrequencyNone, interval: 1}
}

// NewRecurrence creates a recurrence with the given frequency and interval.
func NewRecurrence(frequency Frequency, interval int) (Recurrence, error) {
	if _, ok := frequencyNames[frequency]; !ok {
		return NoRecurrence(), ErrInvalidFrequency
	}
	if frequency == FrequencyNone {
		return NoRecurrence(), nil
	}
	if interval < 1 {
		return NoRecurrence(), ErrInvalidInterval
	}
	return Recurrence{frequency: frequency, interval: interval}, nil
}

// ParseRecurrence parses strings like "daily", "weekly:2", "monthly:3".
func ParseRecurrence(s string) (Recurrence, error) {
	if s == "" {
		return NoRecurrence(), nil
	}
	name, intervalPart, hasInterval := strings.Cut(strings.ToLower(s), ":")
	freq, ok := frequencyValues[name]
	if !ok {
		return NoRecurrence(), ErrInvalidFrequency
	}
	interval := 1
	if hasInterval {
		if _, err := fmt.Sscanf(intervalPart, "%d", &interval); err != nil {
			return NoRecurrence(), ErrInvalidInterval
		}
	}
	return NewRecurrence(freq, interval)
}

// Frequency returns the repeat cadence.
func (r Recurrence) Frequency() Frequency { return r.frequency }

// Interval returns the number of periods between occurrences.
func (r Recurrence) Interval() int { return r.interval }

// IsRecurring returns true if the task repeats.
func (r Recurrence) IsRecurring() bool { return r.frequency != FrequencyNone }

// NextAfter returns the next occurrence strictly after the given instant.
func (r Recurrence) NextAfter(t time.Time) time.Time {
	switch r.frequency {
	case FrequencyDaily:
		return t.AddDate(0, 0, r.interval)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7*r.interval)
	case FrequencyMonthly:
		return t.AddDate(0, r.interval, 0)
	default:
		return t
	}
}

// String returns a parseable representation, e.g. "weekly:2".
func (r Recurrence) String() string {
	if !r.IsRecurring() {
		return "none"
	}
	if r.interval == 1 {
		return r.frequency.String()
	}
	return fmt.Sprintf("%s:%d", r.frequency, r.interval)
}
