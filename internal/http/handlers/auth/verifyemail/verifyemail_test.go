package verifyemail

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/social-network/internal/config"
	"github.com/magabrotheeeer/social-network/internal/models"
	authservice "github.com/magabrotheeeer/social-network/internal/services/auth"
)

// MockService реализует интерфейс verifyemail.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) VerifyEmail(ctx context.Context, rawCode string) (string, *models.User, error) {
	args := m.Called(ctx, rawCode)
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

func TestVerifyEmailHandler_ServeHTTP(t *testing.T) {
	verifiedUser := &models.User{ID: "uid-1", Username: "testuser", Active: true}

	tests := []struct {
		name           string
		code           string
		setupMock      func(m *MockService)
		wantStatusCode int
		wantBody       string
		wantCookie     bool
	}{
		{
			name: "successful verification",
			code: "raw-code",
			setupMock: func(m *MockService) {
				m.On("VerifyEmail", mock.Anything, "raw-code").
					Return("fresh-token", verifiedUser, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"active":true`,
			wantCookie:     true,
		},
		{
			name: "unknown code",
			code: "bad-code",
			setupMock: func(m *MockService) {
				m.On("VerifyEmail", mock.Anything, "bad-code").
					Return("", nil, authservice.ErrInvalidLink).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "invalid registration link",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(MockService)
			tt.setupMock(svcMock)
			handler := New(newNoopLogger(), svcMock, testConfig())

			req := httptest.NewRequest(http.MethodGet, "/verifyemail/"+tt.code, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("code", tt.code)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			if tt.wantCookie {
				cookies := rec.Result().Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, "jwt", cookies[0].Name)
				assert.Equal(t, "fresh-token", cookies[0].Value)
			}

			svcMock.AssertExpectations(t)
		})
	}
}
