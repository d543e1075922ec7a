// Package remove реализует HTTP-обработчик удаления из друзей.
// Дружба разрывается в обе стороны.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-network/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики удаления из друзей.
type Service interface {
	Remove(ctx context.Context, userUID, friendUID string) error
}

// Handler обрабатывает HTTP-запросы удаления из друзей.
type Handler struct {
	log           *slog.Logger
	friendService Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, friendService Service) *Handler {
	return &Handler{
		log:           log,
		friendService: friendService,
	}
}

// ServeHTTP godoc
// @Summary Удаление из друзей
// @Description Разрывает дружбу с указанным пользователем в обе стороны.
// @Security ApiKeyAuth
// @Tags Friends
// @Produce json
// @Param id path string true "UID друга"
// @Success 200 {object} response.Response "Дружба разорвана"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /friends/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.friend.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(http.StatusUnauthorized, "you are not logged in"))
		return
	}

	friendUID := chi.URLParam(r, "id")
	if err := h.friendService.Remove(r.Context(), user.ID, friendUID); err != nil {
		log.Error("failed to remove friend", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to remove friend"))
		return
	}

	log.Info("friend removed", slog.String("user", user.ID), slog.String("friend", friendUID))
	render.JSON(w, r, response.OK())
}
