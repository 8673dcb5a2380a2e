package models

import (
	"strings"
	"time"
)

const (
	dateLayout     = "2-1-2006"
	longDateLayout = "2 January 2006"
)

// Date is a calendar date authored as dd-mm-yyyy. It is kept as text
// and parsed on demand; anything that does not parse is "unknown".
type Date string

// Time parses the date. The second result is false for empty or
// malformed values.
func (d Date) Time() (time.Time, bool) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Known reports whether the date parses.
func (d Date) Known() bool {
	_, ok := d.Time()
	return ok
}

// Long formats the date as "2 January 2006", or "" when unknown.
func (d Date) Long() string {
	t, ok := d.Time()
	if !ok {
		return ""
	}
	return t.Format(longDateLayout)
}
