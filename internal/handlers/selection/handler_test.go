package selection_test

import (
	"micelio/infras/otel/mocks"
	selectionMocks "micelio/internal/domains/selection/mocks"
	"micelio/internal/domains/selection/dto"
	"micelio/internal/handlers/selection"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler_ReplaySelection(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMock    func(svc *selectionMocks.MockSelection)
		expectedCode int
		expectedBody string
	}{
		{
			name: "committed gesture",
			body: `{"events":[
				{"type":"press","room_slug":"dorm-6","day":"2024-06-10","button":"primary","modifier":true},
				{"type":"enter","room_slug":"dorm-6","day":"2024-06-12","modifier":true},
				{"type":"release"}
			]}`,
			setupMock: func(svc *selectionMocks.MockSelection) {
				svc.EXPECT().
					Replay(gomock.Any(), gomock.AssignableToTypeOf(dto.ReplayRequest{})).
					DoAndReturn(func(_ any, req dto.ReplayRequest) (dto.ReplayResponse, error) {
						assert.Len(t, req.Events, 3)

						return dto.ReplayResponse{Outcome: "committed"}, nil
					})
			},
			expectedCode: http.StatusOK,
			expectedBody: `"outcome":"committed"`,
		},
		{
			name:         "no events",
			body:         `{"events":[]}`,
			setupMock:    func(*selectionMocks.MockSelection) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown event type",
			body:         `{"events":[{"type":"hover"}]}`,
			setupMock:    func(*selectionMocks.MockSelection) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := selectionMocks.NewMockSelection(gomock.NewController(t))
			tt.setupMock(svc)

			handler := selection.New(svc, mocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/selections", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}
