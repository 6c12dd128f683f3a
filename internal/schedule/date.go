// Package schedule implements the date-driven task-eligibility engine for
// the farm: recurrence rules, weather-gated overrides, deworming and
// fertilization schedules, and the per-date evaluation that decides which
// care tasks are due.
package schedule

import (
	"fmt"
	"time"
)

// Date is a calendar date without a clock component. All interval
// arithmetic in the engine operates on Dates, never on time.Time, so that
// eligibility is independent of the time of day and the local timezone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the Date for the given year, month, and day. Values are
// normalized the same way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates a time.Time to its calendar date in the time's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO date string ("2006-01-02").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date. Used for day-difference
// arithmetic and for building payload timestamps.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// In returns the given clock time on this date in loc.
func (d Date) In(loc *time.Location, hour, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, loc)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysSince returns the number of whole days from anchor to d. The result
// is negative when d precedes anchor.
func (d Date) DaysSince(anchor Date) int {
	return int(d.Time().Sub(anchor.Time()).Hours() / 24)
}

// MonthDay returns the year-independent portion of the date.
func (d Date) MonthDay() MonthDay {
	return MonthDay{Month: d.Month, Day: d.Day}
}

func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }
func (d Date) After(o Date) bool  { return d.Time().After(o.Time()) }
func (d Date) IsZero() bool       { return d == Date{} }

// String formats the date as ISO "2006-01-02".
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// MarshalText implements encoding.TextMarshaler so Dates serialize as ISO
// strings in JSON payloads.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MonthDay is a recurrence point keyed by month and day, matched against a
// date regardless of its year. Used for the seasonal deworming schedule.
type MonthDay struct {
	Month time.Month
	Day   int
}

// ParseMonthDay parses a "01-02" (MM-DD) string.
func ParseMonthDay(s string) (MonthDay, error) {
	t, err := time.Parse("01-02", s)
	if err != nil {
		return MonthDay{}, fmt.Errorf("invalid month-day %q: %w", s, err)
	}
	return MonthDay{Month: t.Month(), Day: t.Day()}, nil
}

func (m MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(m.Month), m.Day)
}

// DateRange is an inclusive calendar interval. Season definitions that
// cross a year boundary must be encoded as two explicit ranges; the engine
// never invents wraparound logic.
type DateRange struct {
	Start Date
	End   Date
}

// Contains reports whether d falls inside the range, inclusive on both ends.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}
