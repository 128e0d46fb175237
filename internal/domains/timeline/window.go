// Package timeline computes the geometry of the two-month occupancy grid.
// Everything here is a pure function of its inputs; bookings for rooms that
// are not in the catalog, or outside the window, are skipped.
package timeline

import (
	"micelio/shared/timezone"
	"time"
)

// Window is a closed range of days, first of a month through the last day of
// the following month.
type Window struct {
	Start time.Time
	End   time.Time
}

func NewWindow(anchor time.Time) Window {
	day := timezone.StartOfDay(anchor)
	start := timezone.Date(day.Year(), day.Month(), 1)
	end := start.AddDate(0, 2, -1)

	return Window{Start: start, End: end}
}

// Len is the number of day columns.
func (w Window) Len() int {
	return timezone.DaysBetween(w.Start, w.End) + 1
}

func (w Window) Days() []time.Time {
	days := make([]time.Time, 0, w.Len())
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return days
}

// Offset is the column index of day, negative before the window.
func (w Window) Offset(day time.Time) int {
	return timezone.DaysBetween(w.Start, day)
}

func (w Window) Contains(day time.Time) bool {
	d := timezone.StartOfDay(day)

	return !d.Before(w.Start) && !d.After(w.End)
}

// Intersects reports whether [start, end] shares a day with the window.
func (w Window) Intersects(start, end time.Time) bool {
	return !end.Before(w.Start) && !start.After(w.End)
}

// Shift moves the window by months, keeping the two-month span.
func (w Window) Shift(months int) Window {
	return NewWindow(w.Start.AddDate(0, months, 0))
}
