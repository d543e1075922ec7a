// Package requests реализует HTTP-обработчик входящих заявок в друзья.
package requests

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

// Service описывает интерфейс бизнес-логики входящих заявок.
type Service interface {
	ListRequests(ctx context.Context, recipientUID string) ([]*models.FriendRequest, error)
}

// Handler обрабатывает HTTP-запросы входящих заявок.
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
// @Summary Входящие заявки в друзья
// @Description Возвращает входящие заявки аутентифицированного пользователя.
// @Security ApiKeyAuth
// @Tags Friends
// @Produce json
// @Success 200 {object} response.Response "Заявки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /friends/requests [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.friend.requests"

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

	reqs, err := h.friendService.ListRequests(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to list friend requests", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to list friend requests"))
		return
	}

	render.JSON(w, r, response.OKWithData(reqs))
}
