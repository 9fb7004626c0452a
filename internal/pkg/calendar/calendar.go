// Package calendar provides civil dates and times of day with a canonical
// textual form (YYYY-MM-DD and HH:MM:SS) used for storage and JSON.
package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Date is a calendar date without time zone. The zero value is 0001-01-01.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses YYYY-MM-DD. Out-of-range days (2025-02-30) are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf returns the date t falls on in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current UTC date according to now.
func Today(now time.Time) Date {
	return DateOf(now.UTC())
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool {
	return d.Time().After(o.Time())
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock time with second precision.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts HH:MM:SS and HH:MM.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		var shortErr error
		t, shortErr = time.Parse("15:04", s)
		if shortErr != nil {
			return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
		}
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DateRange is an ordered {start, end} pair of dates.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Contains reports whether d is within [Start, End], both ends inclusive.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Schedule is a {departure, arrival} pair of times of day.
type Schedule struct {
	Departure TimeOfDay `json:"departure"`
	Arrival   TimeOfDay `json:"arrival"`
}

// EncodeDateRanges renders ranges to the JSON stored in the database.
// A nil slice is stored as an empty array.
func EncodeDateRanges(ranges []DateRange) ([]byte, error) {
	if ranges == nil {
		ranges = []DateRange{}
	}
	return json.Marshal(ranges)
}

// DecodeDateRanges parses stored JSON back into ranges.
func DecodeDateRanges(raw []byte) ([]DateRange, error) {
	ranges := []DateRange{}
	if len(raw) == 0 {
		return ranges, nil
	}
	if err := json.Unmarshal(raw, &ranges); err != nil {
		return nil, fmt.Errorf("decode date ranges: %w", err)
	}
	return ranges, nil
}

// EncodeSchedules renders schedules to the JSON stored in the database.
func EncodeSchedules(schedules []Schedule) ([]byte, error) {
	if schedules == nil {
		schedules = []Schedule{}
	}
	return json.Marshal(schedules)
}

// DecodeSchedules parses stored JSON back into schedules.
func DecodeSchedules(raw []byte) ([]Schedule, error) {
	schedules := []Schedule{}
	if len(raw) == 0 {
		return schedules, nil
	}
	if err := json.Unmarshal(raw, &schedules); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}
	return schedules, nil
}
