package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"cmp"
	"context"
	"fmt"
	"micelio/infras/otel"
	"micelio/internal/domains/booking/conflict"
	"micelio/internal/domains/booking/events"
	"micelio/internal/domains/booking/model"
	"micelio/internal/domains/booking/model/dto"
	"micelio/internal/domains/booking/store"
	roomRepo "micelio/internal/domains/room/repository"
	"micelio/shared/constant"
	"micelio/shared/failure"
	"micelio/shared/metrics"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	operationCreate = "create"
	operationUpdate = "update"
	operationDelete = "delete"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, roomSlug string) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	store     store.Bookings
	roomRepo  roomRepo.Room
	metrics   *metrics.BookingMetrics
	events    events.Publisher
	otel      otel.Otel
	pickColor model.ColorPicker

	// check-then-write must not interleave between requests
	mu sync.Mutex
}

func New(store store.Bookings, roomRepo roomRepo.Room, metrics *metrics.BookingMetrics, publisher events.Publisher, otel otel.Otel) Booking {
	return NewWithColorPicker(store, roomRepo, metrics, publisher, otel, model.RandomColor)
}

func NewWithColorPicker(
	store store.Bookings,
	roomRepo roomRepo.Room,
	metrics *metrics.BookingMetrics,
	publisher events.Publisher,
	otel otel.Otel,
	pickColor model.ColorPicker,
) Booking {
	return &serviceImpl{
		store:     store,
		roomRepo:  roomRepo,
		metrics:   metrics,
		events:    publisher,
		otel:      otel,
		pickColor: pickColor,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	draft, err := req.ToDraft()
	if err != nil {
		s.metrics.ObserveMutation(operationCreate, metrics.OutcomeInvalid)

		return res, err
	}

	if err = s.ensureRoom(ctx, draft.RoomSlug, operationCreate); err != nil {
		return res, err
	}

	if draft.Color == constant.Empty {
		draft.Color = s.pickColor()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := conflict.Range{RoomSlug: draft.RoomSlug, Start: draft.StartDate, End: draft.EndDate}
	if conflict.HasConflict(candidate, s.store.GetAll(), constant.Empty) {
		log.Info().Str(model.FieldRoomSlug, draft.RoomSlug).Msg("booking rejected, dates already reserved")
		s.metrics.ObserveMutation(operationCreate, metrics.OutcomeConflict)

		return res, failure.ReservedDatesError
	}

	booking := s.store.Add(ctx, draft)
	s.metrics.ObserveMutation(operationCreate, metrics.OutcomeOK)

	scope.SetAttribute(model.FieldID, booking.ID)
	res.FromModel(booking)
	s.events.Publish(ctx, events.NewEvent(events.BookingCreated, res))

	return res, nil
}

// GetAll lists bookings ordered by check-in day, then guest name.
func (s *serviceImpl) GetAll(ctx context.Context, roomSlug string) (res dto.GetBookingsResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings := s.store.GetAll()

	if roomSlug != constant.Empty {
		bookings = slices.DeleteFunc(bookings, func(b model.Booking) bool {
			return b.RoomSlug != roomSlug
		})
	}

	slices.SortStableFunc(bookings, func(a, b model.Booking) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}

		return cmp.Compare(strings.ToLower(a.GuestName), strings.ToLower(b.GuestName))
	})

	res.FromModels(bookings)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, ok := s.store.Get(id)
	if !ok {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := req.ToModel(id)
	if err != nil {
		s.metrics.ObserveMutation(operationUpdate, metrics.OutcomeInvalid)

		return res, err
	}

	if err = s.ensureRoom(ctx, booking.RoomSlug, operationUpdate); err != nil {
		return res, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.store.Get(id)
	if !ok {
		s.metrics.ObserveMutation(operationUpdate, metrics.OutcomeNotFound)

		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Color == constant.Empty {
		booking.Color = current.Color
	}

	if conflict.HasConflict(conflict.FromBooking(booking), s.store.GetAll(), id) {
		log.Info().Str(model.FieldID, id).Msg("booking update rejected, dates already reserved")
		s.metrics.ObserveMutation(operationUpdate, metrics.OutcomeConflict)

		return res, failure.ReservedDatesError
	}

	if !s.store.Update(ctx, booking) {
		s.metrics.ObserveMutation(operationUpdate, metrics.OutcomeNotFound)

		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	s.metrics.ObserveMutation(operationUpdate, metrics.OutcomeOK)
	res.FromModel(booking.Normalize())
	s.events.Publish(ctx, events.NewEvent(events.BookingUpdated, res))

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Delete(ctx, id) {
		log.Error().Str(model.FieldID, id).Msg("booking not found")
		s.metrics.ObserveMutation(operationDelete, metrics.OutcomeNotFound)

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	s.metrics.ObserveMutation(operationDelete, metrics.OutcomeOK)
	s.events.Publish(ctx, events.Deleted(id))

	return nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end, err := req.Range()
	if err != nil {
		return res, err
	}

	exists, err := s.roomRepo.Exist(ctx, req.RoomSlug)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exists {
		return res, failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	candidate := conflict.Range{RoomSlug: req.RoomSlug, Start: start, End: end}
	found := conflict.Conflicts(candidate, s.store.GetAll(), req.ExcludeID)

	res.Available = len(found) == 0
	res.ConflictingIDs = make([]string, 0, len(found))

	for _, b := range found {
		res.ConflictingIDs = append(res.ConflictingIDs, b.ID)
	}

	return res, nil
}

func (s *serviceImpl) ensureRoom(ctx context.Context, slug, operation string) error {
	exists, err := s.roomRepo.Exist(ctx, slug)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exists {
		s.metrics.ObserveMutation(operation, metrics.OutcomeInvalid)

		return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	return nil
}
