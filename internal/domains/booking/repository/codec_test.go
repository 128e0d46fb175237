package repository_test

import (
	"micelio/internal/domains/booking/model"
	"micelio/internal/domains/booking/repository"
	"micelio/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	bookings := []model.Booking{
		{
			ID:        "b-1",
			RoomSlug:  "dorm-6",
			GuestName: "Ana",
			StartDate: timezone.Date(2024, time.June, 10),
			EndDate:   timezone.Date(2024, time.June, 15),
			Color:     "#a3e635",
			Notes:     "late arrival",
		},
	}

	data, err := repository.Encode(bookings)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"roomSlug":"dorm-6"`)

	got, err := repository.Decode(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].GuestName)
	assert.True(t, got[0].StartDate.Equal(bookings[0].StartDate))
	assert.True(t, got[0].EndDate.Equal(bookings[0].EndDate))
	assert.Equal(t, "late arrival", got[0].Notes)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantLen int
		wantErr bool
	}{
		{name: "empty input", data: "", wantLen: 0},
		{name: "empty array", data: "[]", wantLen: 0},
		{name: "date only strings", data: `[{"id":"a","roomSlug":"r","guestName":"g","startDate":"2024-07-01","endDate":"2024-07-05"}]`, wantLen: 1},
		{name: "time of day dropped", data: `[{"id":"a","roomSlug":"r","guestName":"g","startDate":"2024-07-01T13:45:00Z","endDate":"2024-07-05T09:00:00Z"}]`, wantLen: 1},
		{name: "invalid date skipped", data: `[{"id":"a","roomSlug":"r","startDate":"soon","endDate":"2024-07-05"},{"id":"b","roomSlug":"r","startDate":"2024-07-01","endDate":"2024-07-02"}]`, wantLen: 1},
		{name: "reversed range skipped", data: `[{"id":"a","roomSlug":"r","startDate":"2024-07-05","endDate":"2024-07-01"}]`, wantLen: 0},
		{name: "corrupt json", data: `[{"id":`, wantErr: true},
		{name: "not an array", data: `{"id":"a"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repository.Decode([]byte(tt.data))

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)

			for _, b := range got {
				assert.Zero(t, b.StartDate.Hour())
				assert.Zero(t, b.EndDate.Hour())
			}
		})
	}
}
