package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/social-network/internal/config"
	"github.com/magabrotheeeer/social-network/internal/models"
	authservice "github.com/magabrotheeeer/social-network/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, identifier, password string) (string, *models.User, error) {
	args := m.Called(ctx, identifier, password)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func testConfig() *config.Config {
	return &config.Config{
		Env:      "local",
		JWTToken: config.JWTToken{CookieTTLDays: 7},
	}
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	activeUser := &models.User{ID: "uid-1", Username: "testuser", Email: "test@example.com", Active: true}
	inactiveUser := &models.User{ID: "uid-2", Username: "newuser", Email: "new@example.com", Active: false}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *MockService)
		wantStatusCode int
		wantBody       string
		wantCookie     bool
	}{
		{
			name:        "successful login",
			requestBody: Request{Username: "testuser", Password: "password123"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "testuser", "password123").
					Return("jwt-token", activeUser, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"userid":"uid-1"`,
			wantCookie:     true,
		},
		{
			name:        "invalid credentials",
			requestBody: Request{Username: "testuser", Password: "wrongpass"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "testuser", "wrongpass").
					Return("", nil, authservice.ErrInvalidCredentials).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "invalid email or password",
		},
		{
			name:        "unverified email names the address",
			requestBody: Request{Username: "newuser", Password: "password123"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "newuser", "password123").
					Return("", inactiveUser, authservice.ErrNotVerified).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "new@example.com",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"message":"invalid request body"`,
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Username: "testuser"},
			setupMock:      func(_ *MockService) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "field Password is a required field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(MockService)
			tt.setupMock(svcMock)
			handler := New(newNoopLogger(), svcMock, testConfig())

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			if tt.wantCookie {
				cookies := rec.Result().Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, "jwt", cookies[0].Name)
				assert.Equal(t, "jwt-token", cookies[0].Value)
			}

			svcMock.AssertExpectations(t)
		})
	}
}
