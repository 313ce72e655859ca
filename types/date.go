package types

import (
	"fmt"
	"time"
)

// Date is a calendar date with no timezone, the shape the Classroom
// API uses for due dates. Comparisons are local-date against
// local-now; no time-of-day component is synthesized beyond what an
// explicit TimeOfDay supplies.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// TimeOfDay is the optional wall-clock part of a due date.
type TimeOfDay struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Today returns the current calendar date in the local timezone.
func Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// IsPast reports whether the date is strictly before today's local
// date. Due-today is not past.
func (d Date) IsPast() bool {
	return d.Before(Today())
}

// IsToday reports whether the date is today's local date.
func (d Date) IsToday() bool {
	return d.Equal(Today())
}

// At combines the date with an optional time of day into a local
// time.Time. A nil TimeOfDay means end of day, matching how the
// dashboard treats a date-only deadline.
func (d Date) At(t *TimeOfDay) time.Time {
	if t != nil {
		return time.Date(d.Year, time.Month(d.Month), d.Day, t.Hours, t.Minutes, 0, 0, time.Local)
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 23, 59, 59, 0, time.Local)
}
