package selection

import (
	"micelio/infras/otel"
	"micelio/internal/domains/selection/dto"
	"micelio/internal/domains/selection/service"
	"micelio/shared/constant"
	"micelio/shared/validator"
	"micelio/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Selection
	otel    otel.Otel
}

func New(service service.Selection, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/selections", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.ReplaySelection)
	})
}

// ReplaySelection feeds a recorded drag gesture through the selection state
// machine. Nothing is stored; a committed gesture only returns the draft.
func (handler *Handler) ReplaySelection(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplaySelection")
	defer scope.End()

	req := dto.ReplayRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Replay(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to replay selection")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("selection.outcome", res.Outcome)

	response.WithJSON(w, http.StatusOK, res)
}
