// Package dates buckets timestamps into calendar days.
//
// All comparisons happen on the civil date of the reference time's location,
// so passing now in the user's zone makes "today" mean the user's today.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// GridCells is the number of cells in a month view (six weeks).
const GridCells = 42

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Parse reads a timestamp or a bare calendar date. Values without an offset
// are interpreted in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("parse date: empty value")
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date: unrecognised value %q", s)
}

// StartOfDay returns midnight of t's civil date in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a falls on the civil date of ref, in ref's location.
func SameDay(a, ref time.Time) bool {
	ay, am, ad := a.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	return ay == ry && am == rm && ad == rd
}

// IsToday reports whether t falls on now's date.
func IsToday(t, now time.Time) bool {
	return SameDay(t, now)
}

// IsTomorrow reports whether t falls on the day after now.
func IsTomorrow(t, now time.Time) bool {
	return SameDay(t, now.AddDate(0, 0, 1))
}

// IsOverdue reports whether t's date is strictly before now's date.
func IsOverdue(t, now time.Time) bool {
	return StartOfDay(t.In(now.Location())).Before(StartOfDay(now))
}

// LastDays returns the n days ending with now's date, oldest first.
func LastDays(now time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	today := StartOfDay(now)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = today.AddDate(0, 0, i-(n-1))
	}
	return out
}

// Cell is one day of a month grid.
type Cell struct {
	Date         time.Time `json:"date"`
	CurrentMonth bool      `json:"isCurrentMonth"`
}

// MonthGrid lays out month as six Sunday-first weeks, padding with the tail
// of the previous month and the head of the next one.
func MonthGrid(year int, month time.Month, loc *time.Location) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lead := int(first.Weekday())
	daysIn := first.AddDate(0, 1, -1).Day()

	cells := make([]Cell, 0, GridCells)
	for i := lead; i > 0; i-- {
		cells = append(cells, Cell{Date: first.AddDate(0, 0, -i)})
	}
	for d := 0; d < daysIn; d++ {
		cells = append(cells, Cell{Date: first.AddDate(0, 0, d), CurrentMonth: true})
	}
	next := first.AddDate(0, 1, 0)
	for i := 0; len(cells) < GridCells; i++ {
		cells = append(cells, Cell{Date: next.AddDate(0, 0, i)})
	}
	return cells
}

// Format renders t as "Jan 2, 2006".
func Format(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// Relative renders t as Today, Tomorrow, or its formatted date.
func Relative(t, now time.Time) string {
	switch {
	case IsToday(t, now):
		return "Today"
	case IsTomorrow(t, now):
		return "Tomorrow"
	}
	return Format(t.In(now.Location()))
}

// Greeting returns morning, afternoon or evening for now's hour.
func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "morning"
	case h < 18:
		return "afternoon"
	}
	return "evening"
}
