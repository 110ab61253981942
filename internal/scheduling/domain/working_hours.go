package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidClockTime    = errors.New("clock time must be HH:MM")
	ErrInvalidWorkingHours = errors.New("working day must end after it starts")
)

// clockTime is a minute-of-day wall clock value.
type clockTime struct {
	hour   int
	minute int
}

func parseClockTime(s string) (clockTime, error) {
	var ct clockTime
	if _, err := fmt.Sscanf(s, "%d:%d", &ct.hour, &ct.minute); err != nil {
		return clockTime{}, ErrInvalidClockTime
	}
	if ct.hour < 0 || ct.hour > 23 || ct.minute < 0 || ct.minute > 59 {
		return clockTime{}, ErrInvalidClockTime
	}
	return ct, nil
}

func (c clockTime) on(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.hour, c.minute, 0, 0, date.Location())
}

func (c clockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

// WorkingHours bounds the part of each day that scheduling may use.
type WorkingHours struct {
	start clockTime
	end   clockTime
}

// NewWorkingHours parses a pair of "HH:MM" wall clock bounds.
func NewWorkingHours(start, end string) (WorkingHours, error) {
	s, err := parseClockTime(start)
	if err != nil {
		return WorkingHours{}, err
	}
	e, err := parseClockTime(end)
	if err != nil {
		return WorkingHours{}, err
	}
	if e.hour*60+e.minute <= s.hour*60+s.minute {
		return WorkingHours{}, ErrInvalidWorkingHours
	}
	return WorkingHours{start: s, end: e}, nil
}

// DefaultWorkingHours is the 09:00-17:00 working day.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		start: clockTime{hour: 9},
		end:   clockTime{hour: 17},
	}
}

// WindowOn projects the working hours onto a concrete date.
func (wh WorkingHours) WindowOn(date time.Time) TimeRange {
	return TimeRange{
		Start: wh.start.on(date),
		End:   wh.end.on(date),
	}
}

func (wh WorkingHours) String() string {
	return wh.start.String() + "-" + wh.end.String()
}
