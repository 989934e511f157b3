package core

import (
	"errors"
	"fmt"
	"time"
)

// BusinessZone is the fixed civil time zone of the shop (UTC+8). Remote
// timestamps are stored as UTC instants and must be reinterpreted in this
// zone, otherwise records near midnight drift to the adjacent day.
var BusinessZone = time.FixedZone("UTC+8", 8*60*60)

// CivilDate is a calendar date with no time component. It is the single
// canonical date representation of the ledger; everything that needs the
// "YYYY-MM-DD" form or day-of-year math goes through it.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

var ErrInvalidDate = errors.New("invalid calendar date")

// NewCivilDate builds a date from its parts without validation.
func NewCivilDate(year int, month time.Month, day int) CivilDate {
	return CivilDate{Year: year, Month: month, Day: day}
}

// CivilDateOf reinterprets an instant as a civil date in the business zone.
func CivilDateOf(t time.Time) CivilDate {
	y, m, d := t.In(BusinessZone).Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// ParseCivilDate parses a strict 10-character "YYYY-MM-DD" string and
// verifies it names a real calendar day.
func ParseCivilDate(s string) (CivilDate, error) {
	if len(s) != 10 {
		return CivilDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.ParseInLocation("2006-01-02", s, BusinessZone)
	if err != nil {
		return CivilDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	d := CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
	// time.Parse normalizes overflow (2023-02-30 -> March); reject those.
	if d.String() != s {
		return CivilDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CivilDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d CivilDate) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: zero date", ErrInvalidDate)
	}
	if _, err := ParseCivilDate(d.String()); err != nil {
		return err
	}
	return nil
}

// Time returns midnight of the date in the business zone.
func (d CivilDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, BusinessZone)
}

// DayOfYear returns the 1-based ordinal of the date within its year.
func (d CivilDate) DayOfYear() int {
	return d.Time().YearDay()
}

// AddDays returns the civil date n days later.
func (d CivilDate) AddDays(n int) CivilDate {
	return CivilDateOf(d.Time().AddDate(0, 0, n))
}

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// MarshalJSON encodes the date as its canonical "YYYY-MM-DD" string.
func (d CivilDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *CivilDate) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, string(data))
	}
	parsed, err := ParseCivilDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
