package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"micelio/config"
	"micelio/infras/otel"
	"micelio/internal/domains/booking/store"
	roomRepo "micelio/internal/domains/room/repository"
	"micelio/internal/domains/selection"
	"micelio/internal/domains/selection/dto"
	"micelio/internal/domains/timeline"
	timelineDto "micelio/internal/domains/timeline/dto"
	"micelio/shared/constant"
	"micelio/shared/failure"
	"micelio/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type Selection interface {
	Replay(ctx context.Context, req dto.ReplayRequest) (dto.ReplayResponse, error)
}

type serviceImpl struct {
	store    store.Bookings
	roomRepo roomRepo.Room
	machine  *selection.Machine
	scroll   selection.AutoScrollConfig
	geometry timeline.Geometry
	otel     otel.Otel
}

func New(store store.Bookings, roomRepo roomRepo.Room, machine *selection.Machine, cfg *config.Config, otel otel.Otel) Selection {
	return &serviceImpl{
		store:    store,
		roomRepo: roomRepo,
		machine:  machine,
		scroll: selection.AutoScrollConfig{
			Edge:     cfg.Timeline.AutoScrollEdge,
			Step:     cfg.Timeline.AutoScrollStep,
			Interval: time.Duration(cfg.Timeline.AutoScrollIntervalMs) * time.Millisecond,
		}.WithDefaults(),
		geometry: timeline.Geometry{
			CellWidth:     float64(cfg.Timeline.CellWidth),
			TurnoverInset: float64(cfg.Timeline.TurnoverInset),
		},
		otel: otel,
	}
}

// Replay runs a recorded gesture against the current bookings. State, ghost
// chip and auto-scroll are those after the last event; Outcome is the last
// one other than none.
func (s *serviceImpl) Replay(ctx context.Context, req dto.ReplayRequest) (res dto.ReplayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".selection.Replay")
	defer scope.End()
	defer scope.TraceIfError(err)

	events := make([]selection.Event, len(req.Events))
	for i := range req.Events {
		ev, err := req.Events[i].ToEvent()
		if err != nil {
			return res, err
		}

		if err = s.ensureRoom(ctx, req.Events[i].RoomSlug); err != nil {
			return res, err
		}

		events[i] = ev
	}

	bookings := s.store.GetAll()
	state := selection.State{}
	direction := selection.Still

	res.FromOutcome(selection.Outcome{})

	for i, ev := range events {
		var out selection.Outcome
		state, out = s.machine.Apply(state, ev, bookings)

		if out.Kind != selection.None {
			res.FromOutcome(out)
		}

		direction = s.direction(state, req, req.Events[i].PointerX)
	}

	res.State.FromState(state)
	res.AutoScroll.FromConfig(direction, s.scroll)

	if res.Ghost, err = s.ghost(ctx, state, req.WindowStart); err != nil {
		return res, err
	}

	scope.SetAttribute("outcome", res.Outcome)

	return res, nil
}

func (s *serviceImpl) direction(state selection.State, req dto.ReplayRequest, pointerX *int) selection.Direction {
	if state.Phase != selection.Selecting || pointerX == nil || req.ViewportWidth == 0 {
		return selection.Still
	}

	return selection.DirectionFor(*pointerX, req.ViewportLeft, req.ViewportWidth, s.scroll.Edge)
}

func (s *serviceImpl) ghost(ctx context.Context, state selection.State, windowStart string) (*timelineDto.ChipResponse, error) {
	if state.Phase != selection.Selecting {
		return nil, nil
	}

	anchor := state.Anchor

	if windowStart != constant.Empty {
		day, err := timezone.ParseDay(windowStart)
		if err != nil {
			return nil, failure.BadRequestFromString("window_start must be a date in the format 2006-01-02") // nolint:wrapcheck
		}

		anchor = day
	}

	rooms, err := s.roomRepo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	chip, ok := timeline.Ghost(timeline.NewWindow(anchor), rooms, state, s.geometry)
	if !ok {
		return nil, nil
	}

	res := &timelineDto.ChipResponse{}
	res.FromChip(chip)

	return res, nil
}

func (s *serviceImpl) ensureRoom(ctx context.Context, slug string) error {
	if slug == constant.Empty {
		return nil
	}

	exists, err := s.roomRepo.Exist(ctx, slug)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exists {
		return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	return nil
}
