package dto

import (
	"micelio/internal/domains/selection"
	timelineDto "micelio/internal/domains/timeline/dto"
	"micelio/shared/constant"
	"micelio/shared/failure"
	"micelio/shared/timezone"
	"time"
)

const (
	EventPress   = "press"
	EventEnter   = "enter"
	EventRelease = "release"
	EventCancel  = "cancel"

	ButtonPrimary   = "primary"
	ButtonSecondary = "secondary"
)

type EventRequest struct {
	Type     string `json:"type"      validate:"required,oneof=press enter release cancel"`
	RoomSlug string `json:"room_slug" validate:"omitempty,slug"`
	Day      string `json:"day"       validate:"omitempty,datetime=2006-01-02"`
	Button   string `json:"button"    validate:"omitempty,oneof=primary secondary"`
	Modifier bool   `json:"modifier"`
	PointerX *int   `json:"pointer_x"`
}

func (e *EventRequest) ToEvent() (selection.Event, error) {
	switch e.Type {
	case EventRelease:
		return selection.ReleaseModifier{}, nil
	case EventCancel:
		return selection.Cancel{}, nil
	}

	if e.RoomSlug == constant.Empty || e.Day == constant.Empty {
		return nil, failure.BadRequestFromString(e.Type + " events need room_slug and day") // nolint:wrapcheck
	}

	day, err := timezone.ParseDay(e.Day)
	if err != nil {
		return nil, failure.BadRequestFromString("day must be a date in the format 2006-01-02") // nolint:wrapcheck
	}

	if e.Type == EventEnter {
		return selection.Enter{RoomSlug: e.RoomSlug, Day: day, Modifier: e.Modifier}, nil
	}

	button := selection.ButtonPrimary
	if e.Button == ButtonSecondary {
		button = selection.ButtonSecondary
	}

	return selection.Press{RoomSlug: e.RoomSlug, Day: day, Button: button, Modifier: e.Modifier}, nil
}

// ReplayRequest is a recorded gesture. Viewport fields are only needed when
// events carry pointer_x. The ghost chip is placed in the window holding
// window_start, or the selection's anchor day when it is empty.
type ReplayRequest struct {
	Events        []EventRequest `json:"events"         validate:"required,min=1,dive"`
	ViewportLeft  int            `json:"viewport_left"`
	ViewportWidth int            `json:"viewport_width" validate:"omitempty,min=1"`
	WindowStart   string         `json:"window_start"   validate:"omitempty,datetime=2006-01-02"`
}

type StateResponse struct {
	Phase     string `json:"phase"`
	RoomSlug  string `json:"room_slug,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Color     string `json:"color,omitempty"`
}

func (r *StateResponse) FromState(state selection.State) {
	r.Phase = state.Phase.String()

	if state.Phase != selection.Selecting {
		return
	}

	start, end := state.Span()
	r.RoomSlug = state.RoomSlug
	r.StartDate = formatDay(start)
	r.EndDate = formatDay(end)
	r.Color = state.Color
}

type DraftResponse struct {
	RoomSlug  string `json:"room_slug"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Color     string `json:"color"`
}

// AutoScrollResponse tells the client how to scroll: Delta pixels every
// IntervalMs milliseconds until the pointer leaves the edge.
type AutoScrollResponse struct {
	Direction  string `json:"direction"`
	Delta      int    `json:"delta"`
	IntervalMs int64  `json:"interval_ms"`
}

func (r *AutoScrollResponse) FromConfig(dir selection.Direction, cfg selection.AutoScrollConfig) {
	r.Direction = dir.String()
	r.Delta = cfg.Delta(dir)
	r.IntervalMs = cfg.Interval.Milliseconds()
}

type ReplayResponse struct {
	State      StateResponse             `json:"state"`
	Outcome    string                    `json:"outcome"`
	Draft      *DraftResponse            `json:"draft,omitempty"`
	Ghost      *timelineDto.ChipResponse `json:"ghost,omitempty"`
	AutoScroll AutoScrollResponse        `json:"auto_scroll"`
}

func (r *ReplayResponse) FromOutcome(out selection.Outcome) {
	r.Outcome = out.Kind.String()
	r.Draft = nil

	if out.Kind != selection.Committed {
		return
	}

	r.Draft = &DraftResponse{
		RoomSlug:  out.Draft.RoomSlug,
		StartDate: formatDay(out.Draft.StartDate),
		EndDate:   formatDay(out.Draft.EndDate),
		Color:     out.Draft.Color,
	}
}

func formatDay(t time.Time) string {
	return timezone.Format(t, constant.DayFormat)
}
