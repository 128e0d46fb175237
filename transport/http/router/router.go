package router

import (
	"micelio/internal/handlers/booking"
	"micelio/internal/handlers/room"
	"micelio/internal/handlers/selection"
	"micelio/internal/handlers/timeline"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Room      room.Handler
	Booking   booking.Handler
	Selection selection.Handler
	Timeline  timeline.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Selection.Router(routerGroup)
		r.DomainHandlers.Timeline.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
