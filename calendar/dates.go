package calendar

import (
	"sort"
	"time"
)

// DateLayout is the wire and storage format of a check-in date.
const DateLayout = "2006-01-02"

// Clock supplies the current instant. Servers use SystemClock; tests pin "today" with FixedClock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Today formats the clock's current calendar date.
func Today(c Clock) string {
	return FormatDate(c.Now())
}

// FormatDate renders t's calendar date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into UTC midnight of that date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// dayOf returns UTC midnight of t's calendar date, keeping arithmetic free of DST shifts.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateSet is a read-only set of YYYY-MM-DD strings built by NewDateSet. A nil set reads as empty.
type DateSet map[string]struct{}

// NewDateSet builds a set from dates, dropping duplicates.
func NewDateSet(dates ...string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Has reports whether date is in the set.
func (s DateSet) Has(date string) bool {
	_, ok := s[date]
	return ok
}

// Sorted returns the dates in ascending order. The result is never nil.
func (s DateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
