// Package coerce converts raw CSV cell values into typed optional values.
//
// Every function is total: missing or malformed input yields nil, never an
// error. A coercion failure is a data-quality event, not a program error;
// the pipeline keeps processing the remaining fields and rows.
package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowercase = cases.Lower(language.Und)

// dateLayouts are tried in order. Day-first layouts come first so an
// ambiguous value like "03/04/2021" resolves to 3 April, not March 4th.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"02/01/2006 15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// String returns the trimmed cell value, or nil when the cell is empty
// after trimming. An empty string is never returned.
func String(v string) *string {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	return &s
}

// Lower is String followed by Unicode lower-casing; nil propagates.
func Lower(v string) *string {
	s := String(v)
	if s == nil {
		return nil
	}
	l := lowercase.String(*s)
	return &l
}

// Int parses the cell as an integer. Values that look like floats ("42.0")
// are accepted and truncated toward zero.
func Int(v string) *int {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	// Out-of-range conversions are implementation-defined; treat them as
	// malformed rather than storing garbage.
	if math.IsNaN(f) || f >= math.MaxInt || f < math.MinInt {
		return nil
	}
	n := int(f)
	return &n
}

// Float parses the cell as a float after stripping comma thousands
// separators ("1,200.50" parses as 1200.50).
func Float(v string) *float64 {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Date parses the cell against the day-first layout list and truncates the
// result to UTC midnight so natural-key equality is date-only.
func Date(v string) *time.Time {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}
	return nil
}
