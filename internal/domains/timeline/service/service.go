package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"micelio/config"
	"micelio/infras/otel"
	"micelio/internal/domains/booking/model"
	"micelio/internal/domains/booking/store"
	roomRepo "micelio/internal/domains/room/repository"
	"micelio/internal/domains/timeline"
	"micelio/internal/domains/timeline/dto"
	"micelio/shared"
	"micelio/shared/cache"
	"micelio/shared/constant"
	"micelio/shared/failure"
	"micelio/shared/timezone"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const cacheGetTimeline = "timeline:get"

type Timeline interface {
	Get(ctx context.Context, start string) (dto.TimelineResponse, error)
}

type serviceImpl struct {
	store    store.Bookings
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	geometry timeline.Geometry

	// part of every cache key and bumped on each booking change, so an entry
	// rendered before a change is never read after it
	instance   string
	generation atomic.Uint64
}

// New builds the timeline service and drops every cached timeline whenever
// the booking collection changes.
func New(store store.Bookings, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Timeline {
	s := &serviceImpl{
		store:    store,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		geometry: geometryFrom(cfg),
		instance: uuid.NewString(),
	}

	store.Subscribe(func([]model.Booking) {
		s.generation.Add(1)
		shared.InvalidateCaches(context.Background(), s.cache, cacheGetTimeline)
	})

	return s
}

func geometryFrom(cfg *config.Config) timeline.Geometry {
	g := timeline.Geometry{
		CellWidth:     float64(cfg.Timeline.CellWidth),
		TurnoverInset: float64(cfg.Timeline.TurnoverInset),
	}

	if g.CellWidth <= 0 {
		g.CellWidth = timeline.DefaultCellWidth
	}

	if cfg.Timeline.TurnoverInset < 0 {
		g.TurnoverInset = timeline.DefaultTurnoverInset
	}

	return g
}

// Get renders the window containing start, or the current month when start
// is empty.
func (s *serviceImpl) Get(ctx context.Context, start string) (res dto.TimelineResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".timeline.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	anchor := timezone.Now()
	if start != constant.Empty {
		anchor, err = timezone.ParseDay(start)
		if err != nil {
			return res, failure.BadRequestFromString("start must be a date in the format 2006-01-02") // nolint:wrapcheck
		}
	}

	window := timeline.NewWindow(anchor)
	generation := s.generation.Load()
	cacheKey := shared.BuildCacheKey(
		cacheGetTimeline,
		s.instance,
		strconv.FormatUint(generation, 10),
		timezone.Format(window.Start, constant.DayFormat),
	)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for timeline")

		return res, nil
	}

	rooms, err := s.roomRepo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings := s.store.GetAll()

	res.FromLayout(
		window,
		timeline.Rows(rooms),
		timeline.Layout(window, rooms, bookings, s.geometry),
		timeline.Occupancy(window, rooms, bookings),
		s.geometry,
	)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save timeline to cache")
		}
	}()

	return res, nil
}
