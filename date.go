package cgtcalc

import (
	"fmt"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // permissive read format (allows single-digit month/day)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date { return NewDate(d.y, d.m, d.d+days) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// ParseDate parses a Date from a string. It is lenient and accepts
// single-digit months and days like "2025-7-1".
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	t, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", str, err)
	}
	return NewDate(t.Date()), nil
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TaxYear identifies a UK tax year by the calendar year it starts in.
// The UK tax year runs from 6 April to the following 5 April, so the tax
// year starting 6 April 2020 is labelled "2020/2021".
type TaxYear int

// taxYearStart is the month/day a UK tax year begins.
var taxYearStartMonth, taxYearStartDay = time.April, 6

// TaxYearOf returns the tax year a date falls in.
func TaxYearOf(d Date) TaxYear {
	start := NewDate(d.Year(), taxYearStartMonth, taxYearStartDay)
	if d.Before(start) {
		return TaxYear(d.Year() - 1)
	}
	return TaxYear(d.Year())
}

// Start returns the first day of the tax year.
func (y TaxYear) Start() Date { return NewDate(int(y), taxYearStartMonth, taxYearStartDay) }

// End returns the last day of the tax year (5 April of the following year).
func (y TaxYear) End() Date { return (y + 1).Start().Add(-1) }

// String formats the tax year as "2020/2021".
func (y TaxYear) String() string { return fmt.Sprintf("%d/%d", int(y), int(y)+1) }

// ParseTaxYear parses a "2020/2021" label into a TaxYear.
func ParseTaxYear(s string) (TaxYear, error) {
	var from, to int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d/%d", &from, &to); err != nil {
		return 0, fmt.Errorf("invalid tax year %q: %w", s, err)
	}
	if to != from+1 {
		return 0, fmt.Errorf("invalid tax year %q: years must be consecutive", s)
	}
	return TaxYear(from), nil
}
