package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/frolovda/user-registry/internal/models"
)

// MockService implements create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.CreateUserRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful create",
			body: `{"username":"alice","email":"alice@example.com","feature":{"role":"admin"}}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"created"}`,
		},
		{
			name:           "missing username",
			body:           `{"email":"alice@example.com"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"username and email are required"}`,
		},
		{
			name:           "missing email",
			body:           `{"username":"alice"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"username and email are required"}`,
		},
		{
			name:           "malformed body",
			body:           `{"username":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"username and email are required"}`,
		},
		{
			name: "duplicate surfaces as conflict",
			body: `{"username":"alice","email":"alice@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(errors.New("duplicate key: UNIQUE constraint failed: users.username"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"insert failed: duplicate key: UNIQUE constraint failed: users.username"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
