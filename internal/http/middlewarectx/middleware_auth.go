// Package middlewarectx содержит HTTP middleware для проверки сессионных токенов.
//
// JWTMiddleware извлекает токен из заголовка Authorization или cookie jwt,
// проверяет его и разрешает актуального пользователя из хранилища,
// после чего добавляет его в контекст запроса.
//
// Состояние на запрос: Unauthenticated → TokenExtracted → TokenVerified →
// IdentityResolved; авторизация по ролям — отдельная композируемая ступень.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-network/internal/http/cookie"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/jwt"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
	authservice "github.com/magabrotheeeer/social-network/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// CurrentUser — ключ разрешенного пользователя в контексте.
const CurrentUser Key = "current_user"

// Service описывает интерфейс сервиса для проверки сессионного токена.
type Service interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// UserFromContext возвращает разрешенного пользователя из контекста запроса.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(CurrentUser).(*models.User)
	return user, ok
}

// extractToken читает токен сначала из заголовка Authorization,
// затем из cookie jwt.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return cookie.ReadSession(r)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет сессионный токен.
//
// Если токен валиден и пользователь существует, он добавляется в контекст
// запроса, иначе возвращается HTTP 401 Unauthorized.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := extractToken(r)
			if tokenStr == "" {
				log.Error("missing authorization header and session cookie")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(http.StatusUnauthorized, "you are not logged in"))
				return
			}

			user, err := authService.Authenticate(r.Context(), tokenStr)
			if err != nil {
				var msg string
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					msg = "token has expired"
				case errors.Is(err, authservice.ErrUserGone):
					msg = "the user belonging to this token does no longer exist"
				default:
					msg = "invalid token"
				}
				log.Error("authentication failed", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(http.StatusUnauthorized, msg))
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
