package timeline_test

import (
	"micelio/internal/domains/booking/model"
	roomModel "micelio/internal/domains/room/model"
	"micelio/internal/domains/selection"
	"micelio/internal/domains/timeline"
	"micelio/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rooms = []roomModel.Room{{Slug: "r1", Name: "Room 1"}, {Slug: "r2", Name: "Room 2"}}
	geo   = timeline.Geometry{CellWidth: 40, TurnoverInset: 3}
)

func d(month time.Month, day int) time.Time {
	return timezone.Date(2024, month, day)
}

func TestNewWindow(t *testing.T) {
	w := timeline.NewWindow(d(time.July, 17).Add(13 * time.Hour))

	assert.True(t, w.Start.Equal(d(time.July, 1)))
	assert.True(t, w.End.Equal(d(time.August, 31)))
	assert.Equal(t, 62, w.Len())
	assert.Len(t, w.Days(), 62)

	winter := timeline.NewWindow(d(time.December, 31))
	assert.True(t, winter.End.Equal(timezone.Date(2025, time.January, 31)))

	leap := timeline.NewWindow(d(time.January, 5))
	assert.Equal(t, 31+29, leap.Len())

	next := w.Shift(1)
	assert.True(t, next.Start.Equal(d(time.August, 1)))
	assert.True(t, next.End.Equal(d(time.September, 30)))
}

func TestLayout_MidpointsInsideWindow(t *testing.T) {
	w := timeline.NewWindow(d(time.July, 1))
	bookings := []model.Booking{{ID: "a", RoomSlug: "r2", StartDate: d(time.July, 3), EndDate: d(time.July, 6), Color: "#fff000"}}

	chips := timeline.Layout(w, rooms, bookings, geo)

	require.Len(t, chips, 1)
	chip := chips[0]
	assert.Equal(t, 1, chip.Row)
	assert.Equal(t, 2*40.0+20, chip.Left)
	assert.Equal(t, 3*40.0, chip.Width)
	assert.False(t, chip.ContinuesBefore)
	assert.False(t, chip.ContinuesAfter)
	assert.Equal(t, "#fff000", chip.Color)
}

func TestLayout_ContinuesPastEdges(t *testing.T) {
	w := timeline.NewWindow(d(time.July, 1))
	bookings := []model.Booking{
		{ID: "before", RoomSlug: "r1", StartDate: d(time.June, 28), EndDate: d(time.July, 2)},
		{ID: "after", RoomSlug: "r1", StartDate: d(time.August, 30), EndDate: d(time.September, 3)},
		{ID: "both", RoomSlug: "r2", StartDate: d(time.June, 1), EndDate: d(time.September, 30)},
	}

	chips := timeline.Layout(w, rooms, bookings, geo)
	require.Len(t, chips, 3)

	before, after, both := chips[0], chips[1], chips[2]

	assert.Equal(t, "before", before.BookingID)
	assert.True(t, before.ContinuesBefore)
	assert.Equal(t, 0.0, before.Left)
	assert.Equal(t, 1*40.0+20, before.Width)

	assert.Equal(t, "after", after.BookingID)
	assert.True(t, after.ContinuesAfter)
	assert.Equal(t, 60*40.0+20, after.Left)
	assert.Equal(t, 62*40.0-after.Left, after.Width)

	assert.True(t, both.ContinuesBefore)
	assert.True(t, both.ContinuesAfter)
	assert.Equal(t, 0.0, both.Left)
	assert.Equal(t, 62*40.0, both.Width)
}

func TestLayout_TurnoverInset(t *testing.T) {
	w := timeline.NewWindow(d(time.July, 1))
	bookings := []model.Booking{
		{ID: "a", RoomSlug: "r1", StartDate: d(time.July, 1), EndDate: d(time.July, 5)},
		{ID: "b", RoomSlug: "r1", StartDate: d(time.July, 5), EndDate: d(time.July, 8)},
		{ID: "c", RoomSlug: "r2", StartDate: d(time.July, 8), EndDate: d(time.July, 9)},
	}

	chips := timeline.Layout(w, rooms, bookings, geo)
	require.Len(t, chips, 3)

	a, b, c := chips[0], chips[1], chips[2]

	assert.True(t, a.TurnoverEnd)
	assert.False(t, a.TurnoverStart)
	assert.Equal(t, 20.0, a.Left)
	assert.Equal(t, 4*40.0-3, a.Width)

	assert.True(t, b.TurnoverStart)
	assert.False(t, b.TurnoverEnd, "neighbour in another room")
	assert.Equal(t, 4*40.0+20+3, b.Left)
	assert.Equal(t, 3*40.0-3, b.Width)

	assert.Less(t, a.Left+a.Width, b.Left)
	assert.False(t, c.TurnoverStart)
}

func TestLayout_SkipsUnknownRoomsAndOutsideWindow(t *testing.T) {
	w := timeline.NewWindow(d(time.July, 1))
	bookings := []model.Booking{
		{ID: "ghost-room", RoomSlug: "missing", StartDate: d(time.July, 3), EndDate: d(time.July, 6)},
		{ID: "june", RoomSlug: "r1", StartDate: d(time.June, 3), EndDate: d(time.June, 30)},
		{ID: "edge", RoomSlug: "r1", StartDate: d(time.June, 20), EndDate: d(time.July, 1)},
	}

	chips := timeline.Layout(w, rooms, bookings, geo)

	require.Len(t, chips, 1)
	assert.Equal(t, "edge", chips[0].BookingID)
	assert.Equal(t, 20.0, chips[0].Width)
}

func TestGhost(t *testing.T) {
	w := timeline.NewWindow(d(time.July, 1))

	_, ok := timeline.Ghost(w, rooms, selection.State{}, geo)
	assert.False(t, ok)

	chip, ok := timeline.Ghost(w, rooms, selection.State{
		Phase:    selection.Selecting,
		RoomSlug: "r2",
		Anchor:   d(time.July, 10),
		Current:  d(time.July, 7),
		Color:    "#34d399",
	}, geo)

	require.True(t, ok)
	assert.Equal(t, 1, chip.Row)
	assert.Equal(t, 6*40.0+20, chip.Left)
	assert.Equal(t, 3*40.0, chip.Width)
	assert.Equal(t, "#34d399", chip.Color)

	_, ok = timeline.Ghost(w, rooms, selection.State{Phase: selection.Selecting, RoomSlug: "unknown", Anchor: d(time.July, 1), Current: d(time.July, 1)}, geo)
	assert.False(t, ok)
}

func TestOccupancy(t *testing.T) {
	w := timeline.NewWindow(d(time.July, 1))
	bookings := []model.Booking{
		{ID: "a", RoomSlug: "r1", StartDate: d(time.June, 29), EndDate: d(time.July, 3)},
		{ID: "b", RoomSlug: "r1", StartDate: d(time.July, 3), EndDate: d(time.July, 4)},
		{ID: "c", RoomSlug: "r2", StartDate: d(time.July, 2), EndDate: d(time.July, 3)},
		{ID: "z", RoomSlug: "r2", StartDate: d(time.July, 10), EndDate: d(time.July, 10)},
		{ID: "x", RoomSlug: "missing", StartDate: d(time.July, 1), EndDate: d(time.July, 9)},
	}

	occ := timeline.Occupancy(w, rooms, bookings)

	require.Len(t, occ, w.Len())
	assert.True(t, occ[0].Date.Equal(d(time.July, 1)))
	assert.Equal(t, 2, occ[0].Total)

	assert.Equal(t, 1, occ[0].Occupied)
	assert.Equal(t, 2, occ[1].Occupied)
	assert.Equal(t, 1, occ[2].Occupied, "r1 turns over, r2 checks out")
	assert.Equal(t, 0, occ[3].Occupied)
	assert.Equal(t, 0, occ[9].Occupied, "zero-night booking")
}
