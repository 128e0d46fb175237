package middleware

import (
	"crypto/subtle"
	"micelio/config"
	"micelio/infras/otel"
	"micelio/permissions"
	"micelio/shared/constant"
	"micelio/shared/failure"
	"micelio/transport/http/response"
	"net/http"
)

// Admin guards the booking mutation routes.
type Admin interface {
	APIKey(next http.Handler) http.Handler
}

type adminImpl struct {
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAdminMiddleware(otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) Admin {
	return &adminImpl{
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// APIKey requires X-API-Key on routes the permission table marks admin.
// With no key configured every route is open.
func (m *adminImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		expected := m.cfg.App.APIKey
		if expected == constant.Empty || m.permission == nil || m.permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		route := routePattern(request)

		permission := m.permission.FindPermissions(route, request.Method)
		if !permission.RequiresAdmin() {
			next.ServeHTTP(writer, request)

			return
		}

		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"middleware.type": "api_key",
			"http.route":      route,
			"http.method":     request.Method,
		})

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == constant.Empty {
			err := failure.Unauthorized("missing api key")
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			err := failure.ForbiddenError
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}
