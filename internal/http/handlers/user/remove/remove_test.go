package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockService implements remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful delete",
			id:   "1",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, int64(1)).Return(int64(1), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"deleted"}`,
		},
		{
			name: "missing id still reports success",
			id:   "9999",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, int64(9999)).Return(int64(0), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"deleted"}`,
		},
		{
			name:           "invalid id in url",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid id"}`,
		},
		{
			name: "storage failure surfaces as conflict",
			id:   "5",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, int64(5)).Return(int64(0), errors.New("db error"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"delete failed: db error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/users/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
