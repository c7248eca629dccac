package list

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/frolovda/user-registry/internal/models"
)

// MockService implements list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "two users, newest first",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything).Return([]models.User{
					{ID: 2, Username: "bob", Email: "bob@example.com"},
					{ID: 1, Username: "alice", Email: "alice@example.com"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"bob"`,
		},
		{
			name: "empty table renders an empty array",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything).Return([]models.User{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "storage failure",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"could not list users"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

func TestListHandler_ArrayBody(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mockService := new(MockService)
	mockService.On("List", mock.Anything).Return([]models.User{
		{ID: 3, Username: "carol", Email: "carol@example.com"},
		{ID: 1, Username: "alice", Email: "alice@example.com"},
	}, nil)

	handler := New(logger, mockService)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, float64(3), got[0]["id"])
	assert.Equal(t, float64(1), got[1]["id"])
}
