package dto

import (
	"micelio/internal/domains/booking/model"
	"micelio/shared/constant"
	"micelio/shared/failure"
	"micelio/shared/timezone"
	"time"
)

type CreateBookingRequest struct {
	RoomSlug  string `json:"room_slug"  validate:"required,slug"`
	GuestName string `json:"guest_name" validate:"required,max=100"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
	Color     string `json:"color"      validate:"omitempty,hexcolor"`
	Notes     string `json:"notes"      validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) ToDraft() (model.Draft, error) {
	start, end, err := parseRange(c.StartDate, c.EndDate)
	if err != nil {
		return model.Draft{}, err
	}

	return model.Draft{
		RoomSlug:  c.RoomSlug,
		GuestName: c.GuestName,
		StartDate: start,
		EndDate:   end,
		Color:     c.Color,
		Notes:     c.Notes,
	}, nil
}

// UpdateBookingRequest replaces every field of an existing booking.
type UpdateBookingRequest struct {
	RoomSlug  string `json:"room_slug"  validate:"required,slug"`
	GuestName string `json:"guest_name" validate:"required,max=100"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
	Color     string `json:"color"      validate:"omitempty,hexcolor"`
	Notes     string `json:"notes"      validate:"omitempty,max=500"`
}

func (u *UpdateBookingRequest) ToModel(id string) (model.Booking, error) {
	start, end, err := parseRange(u.StartDate, u.EndDate)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:        id,
		RoomSlug:  u.RoomSlug,
		GuestName: u.GuestName,
		StartDate: start,
		EndDate:   end,
		Color:     u.Color,
		Notes:     u.Notes,
	}, nil
}

type AvailabilityRequest struct {
	RoomSlug  string `json:"room_slug"  validate:"required,slug"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
	ExcludeID string `json:"exclude_id" validate:"omitempty"`
}

func (a *AvailabilityRequest) Range() (time.Time, time.Time, error) {
	return parseRange(a.StartDate, a.EndDate)
}

type AvailabilityResponse struct {
	Available      bool     `json:"available"`
	ConflictingIDs []string `json:"conflicting_ids"`
}

type BookingResponse struct {
	ID        string `json:"id"`
	RoomSlug  string `json:"room_slug"`
	GuestName string `json:"guest_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Nights    int    `json:"nights"`
	Color     string `json:"color"`
	Notes     string `json:"notes"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomSlug = model.RoomSlug
	r.GuestName = model.GuestName
	r.StartDate = timezone.Format(model.StartDate, constant.DayFormat)
	r.EndDate = timezone.Format(model.EndDate, constant.DayFormat)
	r.Nights = model.Nights()
	r.Color = model.Color
	r.Notes = model.Notes
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking) {
	r.TotalData = len(models)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := timezone.ParseDay(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("start_date must be a date in the format 2006-01-02") // nolint:wrapcheck
	}

	end, err := timezone.ParseDay(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("end_date must be a date in the format 2006-01-02") // nolint:wrapcheck
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, failure.InvalidDateRangeError
	}

	return start, end, nil
}
