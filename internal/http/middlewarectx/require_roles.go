package middlewarectx

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-network/internal/http/response"
)

// RequireRoles возвращает middleware, пропускающий только пользователей
// с одной из перечисленных ролей. Ставится после JWTMiddleware.
func RequireRoles(log *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(http.StatusUnauthorized, "you are not logged in"))
				return
			}
			if !slices.Contains(roles, user.Role) {
				log.Error("access denied", slog.String("username", user.Username),
					slog.String("role", user.Role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(http.StatusForbidden,
					"you do not have permission to perform this action"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
