//go:build wireinject
// +build wireinject

package di

import (
	"micelio/config"
	"micelio/infras/otel"
	"micelio/infras/redis"
	"micelio/permissions"
	"micelio/shared/cache"
	"micelio/shared/metrics"
	"micelio/transport/http"
	"micelio/transport/http/middleware"
	"micelio/transport/http/router"

	bookingEvents "micelio/internal/domains/booking/events"
	bookingModel "micelio/internal/domains/booking/model"
	bookingRepository "micelio/internal/domains/booking/repository"
	bookingService "micelio/internal/domains/booking/service"
	bookingStore "micelio/internal/domains/booking/store"
	roomRepository "micelio/internal/domains/room/repository"
	roomService "micelio/internal/domains/room/service"
	"micelio/internal/domains/selection"
	selectionService "micelio/internal/domains/selection/service"
	timelineService "micelio/internal/domains/timeline/service"
	bookingHandler "micelio/internal/handlers/booking"
	roomHandler "micelio/internal/handlers/room"
	selectionHandler "micelio/internal/handlers/selection"
	timelineHandler "micelio/internal/handlers/timeline"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	otel.Provide,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAdminMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	metrics.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingEvents.Provide,
	bookingRepository.NewSnapshot,
	bookingStore.Provide,
	wire.Bind(new(bookingStore.Bookings), new(*bookingStore.Store)),
	bookingService.New,
)

var selectionDomain = wire.NewSet(
	bookingModel.NewColorPicker,
	selection.NewMachine,
	selectionService.New,
)

var timelineDomain = wire.NewSet(
	timelineService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	selectionDomain,
	timelineDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	bookingHandler.New,
	selectionHandler.New,
	timelineHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func()) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
