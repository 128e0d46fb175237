package conflict_test

import (
	"micelio/internal/domains/booking/conflict"
	"micelio/internal/domains/booking/model"
	"micelio/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(month time.Month, d int) time.Time {
	return timezone.Date(2024, month, d)
}

func booking(id, room string, start, end time.Time) model.Booking {
	return model.Booking{ID: id, RoomSlug: room, GuestName: "guest " + id, StartDate: start, EndDate: end}
}

func TestHasConflict_R1Scenario(t *testing.T) {
	existing := []model.Booking{booking("a", "r1", day(time.July, 1), day(time.July, 5))}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		conflict bool
	}{
		{name: "overlaps tail", start: day(time.July, 4), end: day(time.July, 8), conflict: true},
		{name: "checks in on checkout day", start: day(time.July, 5), end: day(time.July, 8), conflict: false},
		{name: "checks out on check-in day", start: day(time.June, 25), end: day(time.July, 1), conflict: false},
		{name: "overlaps head by one day", start: day(time.June, 25), end: day(time.July, 2), conflict: true},
		{name: "exact duplicate", start: day(time.July, 1), end: day(time.July, 5), conflict: true},
		{name: "contained", start: day(time.July, 2), end: day(time.July, 3), conflict: true},
		{name: "contains", start: day(time.June, 28), end: day(time.July, 9), conflict: true},
		{name: "disjoint after", start: day(time.July, 6), end: day(time.July, 9), conflict: false},
		{name: "disjoint before", start: day(time.June, 20), end: day(time.June, 30), conflict: false},
		{name: "zero night inside", start: day(time.July, 3), end: day(time.July, 3), conflict: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := conflict.Range{RoomSlug: "r1", Start: tt.start, End: tt.end}

			assert.Equal(t, tt.conflict, conflict.HasConflict(candidate, existing, ""))
		})
	}
}

func TestHasConflict_TurnoverPermitted(t *testing.T) {
	existing := []model.Booking{booking("a", "r", day(time.June, 5), day(time.June, 10))}

	candidate := conflict.Range{RoomSlug: "r", Start: day(time.June, 10), End: day(time.June, 14)}

	assert.False(t, conflict.HasConflict(candidate, existing, ""))
}

func TestHasConflict_PureOverlap(t *testing.T) {
	existing := []model.Booking{booking("a", "r", day(time.June, 10), day(time.June, 15))}

	candidate := conflict.Range{RoomSlug: "r", Start: day(time.June, 12), End: day(time.June, 20)}

	assert.True(t, conflict.HasConflict(candidate, existing, ""))
}

func TestHasConflict_ExcludeOwnID(t *testing.T) {
	a := booking("a", "r", day(time.June, 10), day(time.June, 15))
	existing := []model.Booking{a, booking("b", "r", day(time.June, 20), day(time.June, 22))}

	assert.False(t, conflict.HasConflict(conflict.FromBooking(a), existing, "a"))
	assert.True(t, conflict.HasConflict(conflict.FromBooking(a), existing, ""))

	stretched := conflict.Range{RoomSlug: "r", Start: day(time.June, 10), End: day(time.June, 21)}
	assert.True(t, conflict.HasConflict(stretched, existing, "a"))

	touching := conflict.Range{RoomSlug: "r", Start: day(time.June, 10), End: day(time.June, 20)}
	assert.False(t, conflict.HasConflict(touching, existing, "a"))
}

func TestHasConflict_OtherRoomIgnored(t *testing.T) {
	existing := []model.Booking{booking("a", "dorm-6", day(time.June, 10), day(time.June, 15))}

	candidate := conflict.Range{RoomSlug: "dorm-4", Start: day(time.June, 10), End: day(time.June, 15)}

	assert.False(t, conflict.HasConflict(candidate, existing, ""))
}

func TestHasConflict_ReversedCandidate(t *testing.T) {
	existing := []model.Booking{booking("a", "r", day(time.June, 10), day(time.June, 15))}

	candidate := conflict.Range{RoomSlug: "r", Start: day(time.June, 20), End: day(time.June, 12)}

	assert.True(t, conflict.HasConflict(candidate, existing, ""))
}

func TestConflicts(t *testing.T) {
	existing := []model.Booking{
		booking("a", "r", day(time.June, 1), day(time.June, 5)),
		booking("b", "r", day(time.June, 5), day(time.June, 9)),
		booking("c", "r", day(time.June, 9), day(time.June, 12)),
		booking("d", "q", day(time.June, 1), day(time.June, 30)),
	}

	got := conflict.Conflicts(conflict.Range{RoomSlug: "r", Start: day(time.June, 4), End: day(time.June, 10)}, existing, "")

	ids := make([]string, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Empty(t, conflict.Conflicts(conflict.Range{RoomSlug: "r", Start: day(time.June, 12), End: day(time.June, 14)}, existing, ""))
}

func TestIsOccupied(t *testing.T) {
	bookings := []model.Booking{
		booking("a", "r", day(time.July, 1), day(time.July, 5)),
		booking("b", "r", day(time.July, 5), day(time.July, 8)),
	}

	assert.False(t, conflict.IsOccupied("r", day(time.July, 1), bookings), "check-in day is free")
	assert.True(t, conflict.IsOccupied("r", day(time.July, 3), bookings))
	assert.False(t, conflict.IsOccupied("r", day(time.July, 5), bookings), "turnover day is free")
	assert.True(t, conflict.IsOccupied("r", day(time.July, 6), bookings))
	assert.False(t, conflict.IsOccupied("r", day(time.July, 8), bookings), "checkout day is free")
	assert.False(t, conflict.IsOccupied("other", day(time.July, 3), bookings))
}

func TestNoOverlapInvariant(t *testing.T) {
	var accepted []model.Booking

	candidates := []model.Booking{
		booking("1", "r", day(time.June, 1), day(time.June, 5)),
		booking("2", "r", day(time.June, 3), day(time.June, 7)),
		booking("3", "r", day(time.June, 5), day(time.June, 9)),
		booking("4", "r", day(time.May, 28), day(time.June, 1)),
		booking("5", "r", day(time.June, 8), day(time.June, 8)),
		booking("6", "r", day(time.June, 9), day(time.June, 9)),
		booking("7", "q", day(time.June, 2), day(time.June, 4)),
	}

	for _, c := range candidates {
		if !conflict.HasConflict(conflict.FromBooking(c), accepted, "") {
			accepted = append(accepted, c)
		}
	}

	for i, a := range accepted {
		for j, b := range accepted {
			if i == j || a.RoomSlug != b.RoomSlug {
				continue
			}

			ra, rb := conflict.FromBooking(a), conflict.FromBooking(b)
			overlap := !a.EndDate.Before(b.StartDate) && !b.EndDate.Before(a.StartDate)

			assert.False(t, overlap && !conflict.IsTurnover(ra, rb), "%s overlaps %s", a.ID, b.ID)
		}
	}

	assert.Len(t, accepted, 5)
}
