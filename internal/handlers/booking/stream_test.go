package booking_test

import (
	"context"
	"micelio/internal/domains/booking/model"
	"micelio/internal/domains/booking/repository"
	"micelio/internal/domains/booking/store"
	"micelio/internal/handlers/booking"
	"micelio/shared/metrics"
	"micelio/shared/timezone"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_PushesSnapshotAndChanges(t *testing.T) {
	ctx := context.Background()

	bookings := store.New(ctx, repository.NewMemoryBackend().Snapshot(), metrics.NewBookingMetrics(prometheus.NewRegistry()))
	defer bookings.Close()

	first := bookings.Add(ctx, model.Draft{
		RoomSlug:  "dorm-6",
		GuestName: "Ana",
		StartDate: timezone.Date(2024, time.June, 10),
		EndDate:   timezone.Date(2024, time.June, 12),
	})

	server := httptest.NewServer(booking.NewStream(bookings))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg booking.StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "snapshot", msg.Type)
	require.Len(t, msg.Bookings, 1)
	assert.Equal(t, first.ID, msg.Bookings[0].ID)

	assert.True(t, bookings.Delete(ctx, first.ID))

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "changed", msg.Type)
	assert.Empty(t, msg.Bookings)
}
