package model

import (
	"micelio/shared/timezone"
	"time"
)

const (
	EntityName = "booking"

	FieldID        = "id"
	FieldRoomSlug  = "room_slug"
	FieldGuestName = "guest_name"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
)

// Booking is a whole-day reservation of one room. StartDate is the check-in
// day and EndDate the checkout day, both at midnight.
type Booking struct {
	ID        string
	RoomSlug  string
	GuestName string
	StartDate time.Time
	EndDate   time.Time
	Color     string
	Notes     string
}

// Draft is a booking that has not been assigned an id yet.
type Draft struct {
	RoomSlug  string
	GuestName string
	StartDate time.Time
	EndDate   time.Time
	Color     string
	Notes     string
}

func (d Draft) WithID(id string) Booking {
	return Booking{
		ID:        id,
		RoomSlug:  d.RoomSlug,
		GuestName: d.GuestName,
		StartDate: timezone.StartOfDay(d.StartDate),
		EndDate:   timezone.StartOfDay(d.EndDate),
		Color:     d.Color,
		Notes:     d.Notes,
	}
}

// Normalize truncates both dates to midnight in the application timezone.
func (b Booking) Normalize() Booking {
	b.StartDate = timezone.StartOfDay(b.StartDate)
	b.EndDate = timezone.StartOfDay(b.EndDate)

	return b
}

// Nights is zero for a same-day booking.
func (b Booking) Nights() int {
	return timezone.DaysBetween(b.StartDate, b.EndDate)
}

// Covers reports whether day lies in [StartDate, EndDate].
func (b Booking) Covers(day time.Time) bool {
	d := timezone.StartOfDay(day)

	return !d.Before(b.StartDate) && !d.After(b.EndDate)
}
