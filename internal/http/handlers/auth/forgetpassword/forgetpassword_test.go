package forgetpassword

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

	authservice "github.com/magabrotheeeer/social-network/internal/services/auth"
)

// MockService реализует интерфейс forgetpassword.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ForgetPassword(ctx context.Context, identifier string) error {
	args := m.Called(ctx, identifier)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestForgetPasswordHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *MockService)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:        "reset link sent",
			requestBody: Request{Username: "testuser"},
			setupMock: func(m *MockService) {
				m.On("ForgetPassword", mock.Anything, "testuser").Return(nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"msg":"OK"`,
		},
		{
			name:        "unknown identifier",
			requestBody: Request{Username: "ghost"},
			setupMock: func(m *MockService) {
				m.On("ForgetPassword", mock.Anything, "ghost").
					Return(authservice.ErrUserNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantBody:       `"message":"user not found"`,
		},
		{
			name:        "email delivery failed",
			requestBody: Request{Username: "testuser"},
			setupMock: func(m *MockService) {
				m.On("ForgetPassword", mock.Anything, "testuser").
					Return(authservice.ErrEmailDelivery).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       "there was an error sending the email",
		},
		{
			name:        "storage failure stays generic",
			requestBody: Request{Username: "testuser"},
			setupMock: func(m *MockService) {
				m.On("ForgetPassword", mock.Anything, "testuser").
					Return(assert.AnError).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `"message":"internal error"`,
		},
		{
			name:           "missing username",
			requestBody:    Request{},
			setupMock:      func(_ *MockService) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "field Username is a required field",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"message":"invalid request body"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(MockService)
			tt.setupMock(svcMock)
			handler := New(newNoopLogger(), svcMock)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/forgetpassword", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			svcMock.AssertExpectations(t)
		})
	}
}
