package repository

import (
	"encoding/json"
	"fmt"
	"micelio/internal/domains/booking/model"
	"micelio/shared/constant"
	"micelio/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type record struct {
	ID        string `json:"id"`
	RoomSlug  string `json:"roomSlug"`
	GuestName string `json:"guestName"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Color     string `json:"color,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Encode serializes bookings as a JSON array with RFC3339 dates.
func Encode(bookings []model.Booking) ([]byte, error) {
	records := make([]record, len(bookings))
	for i, b := range bookings {
		records[i] = record{
			ID:        b.ID,
			RoomSlug:  b.RoomSlug,
			GuestName: b.GuestName,
			StartDate: b.StartDate.Format(constant.DateFormat),
			EndDate:   b.EndDate.Format(constant.DateFormat),
			Color:     b.Color,
			Notes:     b.Notes,
		}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bookings: %w", err)
	}

	return data, nil
}

// Decode parses a stored collection. Empty input is an empty collection.
// Records with unreadable dates or start after end are skipped.
func Decode(data []byte) ([]model.Booking, error) {
	if len(data) == 0 {
		return []model.Booking{}, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	bookings := make([]model.Booking, 0, len(records))
	for _, r := range records {
		start, err := parseDate(r.StartDate)
		if err != nil {
			log.Warn().Err(err).Str(model.FieldID, r.ID).Msg("skipping stored booking with invalid start date")

			continue
		}

		end, err := parseDate(r.EndDate)
		if err != nil {
			log.Warn().Err(err).Str(model.FieldID, r.ID).Msg("skipping stored booking with invalid end date")

			continue
		}

		if end.Before(start) {
			log.Warn().Str(model.FieldID, r.ID).Msg("skipping stored booking ending before it starts")

			continue
		}

		bookings = append(bookings, model.Booking{
			ID:        r.ID,
			RoomSlug:  r.RoomSlug,
			GuestName: r.GuestName,
			StartDate: start,
			EndDate:   end,
			Color:     r.Color,
			Notes:     r.Notes,
		})
	}

	return bookings, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(constant.DateFormat, value)
	if err == nil {
		return timezone.StartOfDay(t), nil
	}

	t, err = timezone.ParseDay(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return t, nil
}
