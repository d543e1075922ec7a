// Package remove реализует HTTP-обработчик удаления поста.
// Удаление доступно автору поста и администратору.
package remove

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
	"github.com/magabrotheeeer/social-network/internal/models"
	postservice "github.com/magabrotheeeer/social-network/internal/services/post"
	"github.com/magabrotheeeer/social-network/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики удаления поста.
type Service interface {
	Remove(ctx context.Context, id int, requester *models.User) (int, error)
}

// Handler обрабатывает HTTP-запросы удаления поста.
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
// @Summary Удаление поста
// @Description Удаляет пост. Разрешено автору поста и администратору.
// @Security ApiKeyAuth
// @Tags Posts
// @Produce json
// @Param id path int true "ID поста"
// @Success 200 {object} response.Response "Пост удален"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Действие запрещено"
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Router /posts/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.remove"

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
		log.Error("invalid post id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid post id"))
		return
	}

	count, err := h.postService.Remove(r.Context(), id, user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "post not found"))
		case errors.Is(err, postservice.ErrNotAllowed):
			log.Error("post removal rejected", sl.Err(err), slog.String("user", user.Username))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error(http.StatusForbidden, err.Error()))
		default:
			log.Error("failed to remove post", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to remove post"))
		}
		return
	}

	log.Info("post removed", slog.Int("id", id), slog.Int("count", count))
	render.JSON(w, r, response.OKWithData(map[string]int{"deleted": count}))
}
