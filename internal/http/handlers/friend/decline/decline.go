// Package decline реализует HTTP-обработчик отклонения заявки в друзья.
package decline

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-network/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики отклонения заявок.
type Service interface {
	Decline(ctx context.Context, requestID int, recipientUID string) error
}

// Handler обрабатывает HTTP-запросы отклонения заявок.
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
// @Summary Отклонение заявки в друзья
// @Description Отклоняет входящую заявку: заявка удаляется, дружба не создается.
// @Security ApiKeyAuth
// @Tags Friends
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} response.Response "Заявка отклонена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Router /friends/requests/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.friend.decline"

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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid request id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid request id"))
		return
	}

	if err := h.friendService.Decline(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "friend request not found"))
			return
		}
		log.Error("failed to decline friend request", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to decline friend request"))
		return
	}

	log.Info("friend request declined", slog.Int("id", id), slog.String("recipient", user.Username))
	render.JSON(w, r, response.OK())
}
