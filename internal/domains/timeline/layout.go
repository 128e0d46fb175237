package timeline

import (
	"micelio/internal/domains/booking/model"
	roomModel "micelio/internal/domains/room/model"
	"micelio/internal/domains/selection"
	"slices"
	"time"
)

const (
	DefaultCellWidth     = 40.0
	DefaultTurnoverInset = 3.0
)

// Geometry holds the pixel constants of the grid.
type Geometry struct {
	CellWidth     float64
	TurnoverInset float64
}

func (g Geometry) withDefaults() Geometry {
	if g.CellWidth <= 0 {
		g.CellWidth = DefaultCellWidth
	}

	if g.TurnoverInset < 0 {
		g.TurnoverInset = DefaultTurnoverInset
	}

	return g
}

// Chip is the rendered bar of one booking. Left and Width are pixels from the
// start of the window. A chip starts and ends at the middle of its first and
// last day unless it continues past that edge of the window, in which case
// the edge is flush with the window border.
type Chip struct {
	BookingID       string
	RoomSlug        string
	Row             int
	GuestName       string
	Color           string
	Left            float64
	Width           float64
	ContinuesBefore bool
	ContinuesAfter  bool
	TurnoverStart   bool
	TurnoverEnd     bool
}

type Row struct {
	Index int
	Room  roomModel.Room
}

// Rows returns one row per catalog room, in catalog order.
func Rows(rooms []roomModel.Room) []Row {
	rows := make([]Row, len(rooms))
	for i, r := range rooms {
		rows[i] = Row{Index: i, Room: r}
	}

	return rows
}

// Layout returns a chip for every booking of a catalog room that intersects
// w, ordered by row and then by position.
func Layout(w Window, rooms []roomModel.Room, bookings []model.Booking, g Geometry) []Chip {
	g = g.withDefaults()
	rowOf := rowIndex(rooms)

	chips := make([]Chip, 0, len(bookings))
	for _, b := range bookings {
		row, ok := rowOf[b.RoomSlug]
		if !ok || !w.Intersects(b.StartDate, b.EndDate) {
			continue
		}

		chip := place(w, b.StartDate, b.EndDate, g)
		chip.BookingID = b.ID
		chip.RoomSlug = b.RoomSlug
		chip.Row = row
		chip.GuestName = b.GuestName
		chip.Color = b.Color

		if !chip.ContinuesBefore && hasNeighbour(bookings, b, func(o model.Booking) bool { return o.EndDate.Equal(b.StartDate) }) {
			chip.TurnoverStart = true
			chip.Left += g.TurnoverInset
			chip.Width -= g.TurnoverInset
		}

		if !chip.ContinuesAfter && hasNeighbour(bookings, b, func(o model.Booking) bool { return o.StartDate.Equal(b.EndDate) }) {
			chip.TurnoverEnd = true
			chip.Width -= g.TurnoverInset
		}

		chip.Width = max(chip.Width, 0)
		chips = append(chips, chip)
	}

	slices.SortStableFunc(chips, func(a, b Chip) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}

		switch {
		case a.Left < b.Left:
			return -1
		case a.Left > b.Left:
			return 1
		default:
			return 0
		}
	})

	return chips
}

// Ghost places the in-progress selection. It reports false when nothing is
// being selected or the selection is not visible.
func Ghost(w Window, rooms []roomModel.Room, state selection.State, g Geometry) (Chip, bool) {
	if state.Phase != selection.Selecting {
		return Chip{}, false
	}

	row, ok := rowIndex(rooms)[state.RoomSlug]
	if !ok {
		return Chip{}, false
	}

	start, end := state.Span()
	if !w.Intersects(start, end) {
		return Chip{}, false
	}

	chip := place(w, start, end, g.withDefaults())
	chip.RoomSlug = state.RoomSlug
	chip.Row = row
	chip.Color = state.Color

	return chip, true
}

func place(w Window, start, end time.Time, g Geometry) Chip {
	half := g.CellWidth / 2

	chip := Chip{
		ContinuesBefore: start.Before(w.Start),
		ContinuesAfter:  end.After(w.End),
	}

	left := 0.0
	if !chip.ContinuesBefore {
		left = float64(w.Offset(start))*g.CellWidth + half
	}

	right := float64(w.Len()) * g.CellWidth
	if !chip.ContinuesAfter {
		right = float64(w.Offset(end))*g.CellWidth + half
	}

	chip.Left = left
	chip.Width = max(right-left, 0)

	return chip
}

func hasNeighbour(bookings []model.Booking, b model.Booking, match func(model.Booking) bool) bool {
	return slices.ContainsFunc(bookings, func(o model.Booking) bool {
		return o.ID != b.ID && o.RoomSlug == b.RoomSlug && match(o)
	})
}

func rowIndex(rooms []roomModel.Room) map[string]int {
	idx := make(map[string]int, len(rooms))
	for i, r := range rooms {
		idx[r.Slug] = i
	}

	return idx
}
