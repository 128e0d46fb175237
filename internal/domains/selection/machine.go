// Package selection implements the drag gesture that turns a range of
// timeline cells into a booking draft.
//
// A gesture starts with a primary press on a free day while the modifier key
// is held, grows as the pointer enters other free days of the same room, and
// ends when the modifier is released. On release the span is checked for
// conflicts: a clear span yields a draft, a conflicting one is dropped
// without any error.
package selection

import (
	"micelio/internal/domains/booking/conflict"
	"micelio/internal/domains/booking/model"
	"micelio/shared/timezone"
	"time"
)

type Phase int

const (
	Idle Phase = iota
	Selecting
)

func (p Phase) String() string {
	switch p {
	case Selecting:
		return "selecting"
	default:
		return "idle"
	}
}

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// State is the whole gesture. The zero value is Idle.
type State struct {
	Phase    Phase
	RoomSlug string
	Anchor   time.Time
	Current  time.Time
	Color    string
}

// Span returns the selected days in order, however the pointer was dragged.
func (s State) Span() (time.Time, time.Time) {
	if s.Current.Before(s.Anchor) {
		return s.Current, s.Anchor
	}

	return s.Anchor, s.Current
}

type Event interface {
	event()
}

// Press is a pointer button going down on a day cell.
type Press struct {
	RoomSlug string
	Day      time.Time
	Button   Button
	Modifier bool
}

// Enter is the pointer moving into a day cell.
type Enter struct {
	RoomSlug string
	Day      time.Time
	Modifier bool
}

type ReleaseModifier struct{}

// Cancel clears the gesture from outside, e.g. when the view goes away.
type Cancel struct{}

func (Press) event()           {}
func (Enter) event()           {}
func (ReleaseModifier) event() {}
func (Cancel) event()          {}

type OutcomeKind int

const (
	None OutcomeKind = iota
	Committed
	Discarded
	Cancelled
)

func (k OutcomeKind) String() string {
	switch k {
	case Committed:
		return "committed"
	case Discarded:
		return "discarded"
	case Cancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Outcome reports what a transition produced. Draft is set only when Kind is
// Committed.
type Outcome struct {
	Kind  OutcomeKind
	Draft model.Draft
}

type Machine struct {
	pickColor model.ColorPicker
}

func NewMachine(pickColor model.ColorPicker) *Machine {
	if pickColor == nil {
		pickColor = model.RandomColor
	}

	return &Machine{pickColor: pickColor}
}

// Apply returns the state after ev. bookings is only read.
func (m *Machine) Apply(state State, ev Event, bookings []model.Booking) (State, Outcome) {
	if state.Phase == Selecting {
		return m.selecting(state, ev, bookings)
	}

	return m.idle(state, ev, bookings)
}

func (m *Machine) idle(state State, ev Event, bookings []model.Booking) (State, Outcome) {
	press, ok := ev.(Press)
	if !ok || press.Button != ButtonPrimary || !press.Modifier {
		return state, Outcome{}
	}

	day := timezone.StartOfDay(press.Day)
	if conflict.IsOccupied(press.RoomSlug, day, bookings) {
		return state, Outcome{}
	}

	return State{
		Phase:    Selecting,
		RoomSlug: press.RoomSlug,
		Anchor:   day,
		Current:  day,
		Color:    m.pickColor(),
	}, Outcome{}
}

func (m *Machine) selecting(state State, ev Event, bookings []model.Booking) (State, Outcome) {
	switch e := ev.(type) {
	case Enter:
		if !e.Modifier {
			return State{}, Outcome{Kind: Cancelled}
		}

		day := timezone.StartOfDay(e.Day)
		if e.RoomSlug != state.RoomSlug || conflict.IsOccupied(e.RoomSlug, day, bookings) {
			return state, Outcome{}
		}

		state.Current = day

		return state, Outcome{}
	case Press:
		if !e.Modifier {
			return State{}, Outcome{Kind: Cancelled}
		}

		return state, Outcome{}
	case ReleaseModifier:
		return State{}, m.commit(state, bookings)
	case Cancel:
		return State{}, Outcome{Kind: Cancelled}
	}

	return state, Outcome{}
}

func (m *Machine) commit(state State, bookings []model.Booking) Outcome {
	start, end := state.Span()

	candidate := conflict.Range{RoomSlug: state.RoomSlug, Start: start, End: end}
	if conflict.HasConflict(candidate, bookings, "") {
		return Outcome{Kind: Discarded}
	}

	return Outcome{
		Kind: Committed,
		Draft: model.Draft{
			RoomSlug:  state.RoomSlug,
			StartDate: start,
			EndDate:   end,
			Color:     state.Color,
		},
	}
}
