package timeline

import (
	"micelio/infras/otel"
	"micelio/internal/domains/timeline/service"
	"micelio/shared/constant"
	"micelio/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Timeline
	otel    otel.Otel
}

func New(service service.Timeline, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/timeline", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTimeline)
	})
}

// GetTimeline renders the two-month window containing ?start=YYYY-MM-DD,
// or the current one when start is omitted.
func (handler *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeline")
	defer scope.End()

	start := r.URL.Query().Get(constant.RequestParamStartDate)

	res, err := handler.service.Get(ctx, start)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("start", start).Msg("failed to render timeline")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Timeline rendered successfully")

	response.WithJSON(w, http.StatusOK, res)
}
