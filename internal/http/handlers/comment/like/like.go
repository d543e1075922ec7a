// Package like реализует HTTP-обработчик лайков комментариев:
// POST ставит лайк, DELETE снимает.
package like

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

// Service описывает интерфейс бизнес-логики лайков комментариев.
type Service interface {
	LikeComment(ctx context.Context, commentID int, userUID string) error
	UnlikeComment(ctx context.Context, commentID int, userUID string) error
}

// Handler обрабатывает HTTP-запросы лайков комментариев.
type Handler struct {
	log         *slog.Logger
	postService Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, postService Service) *Handler {
	return &Handler{
		log:         log,
		postService: postService,
	}
}

// ServeHTTP godoc
// @Summary Лайк комментария
// @Description POST ставит лайк комментарию, DELETE снимает.
// @Security ApiKeyAuth
// @Tags Comments
// @Produce json
// @Param id path int true "ID комментария"
// @Success 200 {object} response.Response "Готово"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Комментарий не найден"
// @Router /comments/{id}/like [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comment.like"

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
		log.Error("invalid comment id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid comment id"))
		return
	}

	if r.Method == http.MethodDelete {
		err = h.postService.UnlikeComment(r.Context(), id, user.ID)
	} else {
		err = h.postService.LikeComment(r.Context(), id, user.ID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "comment not found"))
			return
		}
		log.Error("failed to toggle comment like", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to toggle comment like"))
		return
	}

	render.JSON(w, r, response.OK())
}
