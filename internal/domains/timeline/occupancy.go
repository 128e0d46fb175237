package timeline

import (
	"micelio/internal/domains/booking/model"
	roomModel "micelio/internal/domains/room/model"
	"time"
)

// DayOccupancy counts the catalog rooms that are taken for the night of Date.
type DayOccupancy struct {
	Date     time.Time
	Occupied int
	Total    int
}

// Occupancy returns one entry per day of w. A room is taken on a day when a
// booking covers it as anything but its checkout day, so zero-night bookings
// never count.
func Occupancy(w Window, rooms []roomModel.Room, bookings []model.Booking) []DayOccupancy {
	known := rowIndex(rooms)
	taken := make([]map[string]struct{}, w.Len())

	for _, b := range bookings {
		if _, ok := known[b.RoomSlug]; !ok || !w.Intersects(b.StartDate, b.EndDate) {
			continue
		}

		first := max(w.Offset(b.StartDate), 0)
		last := min(w.Offset(b.EndDate)-1, w.Len()-1)

		for i := first; i <= last; i++ {
			if taken[i] == nil {
				taken[i] = map[string]struct{}{}
			}

			taken[i][b.RoomSlug] = struct{}{}
		}
	}

	days := w.Days()
	out := make([]DayOccupancy, len(days))

	for i, d := range days {
		out[i] = DayOccupancy{Date: d, Occupied: len(taken[i]), Total: len(rooms)}
	}

	return out
}
