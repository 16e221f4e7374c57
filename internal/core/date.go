package core

import (
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

type (
	// Date is a calendar date with no time-of-day component.
	Date struct {
		time.Time
	}

	// MonthKey is a canonical "YYYY-MM" string used for month filtering
	// and grouping.
	MonthKey string
)

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
// Returns ErrInvalidDate on malformed input.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Key returns the sortable "YYYY-MM-DD" form.
func (d Date) Key() string {
	return d.Format(dateLayout)
}

// MonthKey returns the "YYYY-MM" month bucket the date belongs to.
func (d Date) MonthKey() MonthKey {
	return MonthKey(d.Format(monthLayout))
}

// ParseMonthKey validates a "YYYY-MM" string.
// Returns ErrInvalidFilter on malformed input, since month keys only enter
// the system as filter criteria.
func ParseMonthKey(s string) (MonthKey, error) {
	if _, err := time.Parse(monthLayout, s); err != nil {
		return "", ErrInvalidFilter
	}
	return MonthKey(s), nil
}

func (k MonthKey) Validate() error {
	_, err := ParseMonthKey(string(k))
	return err
}

// Label renders the month key as a short chart label, e.g. "Oct/25".
func (k MonthKey) Label() string {
	t, err := time.Parse(monthLayout, string(k))
	if err != nil {
		return string(k)
	}
	return t.Format("Jan/06")
}

// MonthKeyOf returns the month bucket of an arbitrary instant.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format(monthLayout))
}
