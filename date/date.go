// Package date provides a calendar date with day granularity, the lenient
// date grammar used on the command line, date ranges and dated series.
package date

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the ISO 8601 layout used to write dates.
const DateFormat = "2006-01-02"

// readDateFormat also accepts single digit months and days.
const readDateFormat = "2006-1-2"

// Date is a day of the Gregorian calendar. The zero Date is used as an
// unbounded end in ranges.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

func (d Date) Year() int                 { return d.y }
func (d Date) Month() time.Month         { return d.m }
func (d Date) Day() int                  { return d.d }
func (d Date) Weekday() time.Weekday     { return d.time().Weekday() }
func (d Date) ISOWeek() (year, week int) { return d.time().ISOWeek() }

// time is midnight UTC on d.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) IsZero() bool { return d == Date{} }

// Compare returns -1, 0 or +1 when d is before, equal to or after x.
func (d Date) Compare(x Date) int {
	switch {
	case d.y != x.y:
		return cmp.Compare(d.y, x.y)
	case d.m != x.m:
		return cmp.Compare(d.m, x.m)
	default:
		return cmp.Compare(d.d, x.d)
	}
}

func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }
func (d Date) After(x Date) bool  { return d.Compare(x) > 0 }

// Add returns the date i days after d, or before if i is negative.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// String returns d as YYYY-MM-DD.
func (d Date) String() string { return d.Format(DateFormat) }

// Format formats d with a [time.Time.Format] layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// Parse parses a Date as stored in data files. It is lenient and accepts
// formats like "2025-7-1", and ignores a trailing time of day such as
// "2025-07-01 10:22:31.123" or "2025-07-01T10:22:31Z".
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if i := strings.IndexAny(str, " T"); i > 0 {
		str = str[:i]
	}
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// MarshalText writes d as YYYY-MM-DD, so that JSON and CSV share the format.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText parses d leniently, see Parse.
func (d *Date) UnmarshalText(text []byte) (err error) {
	*d, err = Parse(string(text))
	return err
}
