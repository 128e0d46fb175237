// Package conflict decides whether a date range can be booked for a room.
//
// Ranges are closed on both ends. A range that starts on another booking's
// checkout day, or ends on its check-in day, never conflicts with it.
package conflict

import (
	"micelio/internal/domains/booking/model"
	"micelio/shared/timezone"
	"time"
)

// Range is a candidate reservation of one room.
type Range struct {
	RoomSlug string
	Start    time.Time
	End      time.Time
}

// FromBooking returns the range a booking occupies.
func FromBooking(b model.Booking) Range {
	return Range{RoomSlug: b.RoomSlug, Start: b.StartDate, End: b.EndDate}
}

// Normalize truncates both ends to midnight and orders them.
func (r Range) Normalize() Range {
	start := timezone.StartOfDay(r.Start)
	end := timezone.StartOfDay(r.End)

	if end.Before(start) {
		start, end = end, start
	}

	return Range{RoomSlug: r.RoomSlug, Start: start, End: end}
}

// HasConflict reports whether candidate overlaps any booking of the same
// room other than excludeID.
func HasConflict(candidate Range, existing []model.Booking, excludeID string) bool {
	candidate = candidate.Normalize()

	for _, b := range existing {
		if conflicts(candidate, b, excludeID) {
			return true
		}
	}

	return false
}

// Conflicts returns the bookings candidate overlaps, in collection order.
func Conflicts(candidate Range, existing []model.Booking, excludeID string) []model.Booking {
	candidate = candidate.Normalize()

	var out []model.Booking
	for _, b := range existing {
		if conflicts(candidate, b, excludeID) {
			out = append(out, b)
		}
	}

	return out
}

// IsTurnover reports whether a and b only share a checkout/check-in day.
func IsTurnover(a, b Range) bool {
	return a.Start.Equal(b.End) || a.End.Equal(b.Start)
}

// IsOccupied reports whether day is taken in room. A day that is only a
// check-in or checkout day of the bookings covering it counts as free.
func IsOccupied(roomSlug string, day time.Time, bookings []model.Booking) bool {
	d := timezone.StartOfDay(day)

	for _, b := range bookings {
		if b.RoomSlug != roomSlug {
			continue
		}

		if d.After(b.StartDate) && d.Before(b.EndDate) {
			return true
		}
	}

	return false
}

func conflicts(candidate Range, b model.Booking, excludeID string) bool {
	if b.RoomSlug != candidate.RoomSlug {
		return false
	}

	if excludeID != "" && b.ID == excludeID {
		return false
	}

	existing := Range{RoomSlug: b.RoomSlug, Start: timezone.StartOfDay(b.StartDate), End: timezone.StartOfDay(b.EndDate)}
	if IsTurnover(candidate, existing) {
		return false
	}

	return within(candidate.Start, existing) ||
		within(candidate.End, existing) ||
		within(existing.Start, candidate)
}

func within(t time.Time, r Range) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
