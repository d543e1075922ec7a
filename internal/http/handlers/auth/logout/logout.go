// Package logout реализует HTTP-обработчик выхода.
//
// Выход без серверного состояния: cookie заменяется инертным значением,
// bearer-токен остается валиден до естественного истечения.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-network/internal/http/cookie"
	"github.com/magabrotheeeer/social-network/internal/http/response"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	h.log.Info("user logged out",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookie.ClearSession(w)
	render.JSON(w, r, response.OK())
}
