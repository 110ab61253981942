package value_objects

import (
	"errors"
	"strings"
	"time"
)

// TimeOfDay represents the part of the day a task is intended for.
type TimeOfDay int

const (
	TimeOfDayAny TimeOfDay = iota
	TimeOfDayMorning
	TimeOfDayAfternoon
	TimeOfDayEvening
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day value")

var timeOfDayNames = map[TimeOfDay]string{
	TimeOfDayAny:       "any",
	TimeOfDayMorning:   "morning",
	TimeOfDayAfternoon: "afternoon",
	TimeOfDayEvening:   "evening",
}

var timeOfDayValues = map[string]TimeOfDay{
	"any":       TimeOfDayAny,
	"morning":   TimeOfDayMorning,
	"afternoon": TimeOfDayAfternoon,
	"evening":   TimeOfDayEvening,
}

// ParseTimeOfDay creates a TimeOfDay from a string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if s == "" {
		return TimeOfDayAny, nil
	}
	tod, ok := timeOfDayValues[strings.ToLower(s)]
	if !ok {
		return TimeOfDayAny, ErrInvalidTimeOfDay
	}
	return tod, nil
}

// String returns the string representation.
func (tod TimeOfDay) String() string {
	if name, ok := timeOfDayNames[tod]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the value is a known period.
func (tod TimeOfDay) IsValid() bool {
	_, ok := timeOfDayNames[tod]
	return ok
}

// PeriodOf returns the period of day the given instant falls into.
// Morning is before 12:00, afternoon is 12:00-16:59, evening is 17:00 onward.
func PeriodOf(t time.Time) TimeOfDay {
	hour := t.Hour()
	switch {
	case hour < 12:
		return TimeOfDayMorning
	case hour < 17:
		return TimeOfDayAfternoon
	default:
		return TimeOfDayEvening
	}
}

// Matches returns true if the task's declared period matches the instant.
// TimeOfDayAny never matches; the match bonus only applies to explicit
// preferences.
func (tod TimeOfDay) Matches(t time.Time) bool {
	if tod == TimeOfDayAny {
		return false
	}
	return tod == PeriodOf(t)
}
