// Package list реализует HTTP-обработчик списка друзей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-network/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
)

// Service описывает интерфейс бизнес-логики списка друзей.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.User, error)
}

// Handler обрабатывает HTTP-запросы списка друзей.
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
// @Summary Список друзей
// @Description Возвращает друзей аутентифицированного пользователя.
// @Security ApiKeyAuth
// @Tags Friends
// @Produce json
// @Success 200 {object} response.Response "Друзья"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /friends [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.friend.list"

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

	friends, err := h.friendService.List(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to list friends", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to list friends"))
		return
	}

	render.JSON(w, r, response.OKWithData(friends))
}
