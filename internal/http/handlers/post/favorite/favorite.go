// Package favorite реализует HTTP-обработчик избранных постов:
// POST добавляет пост в избранное, DELETE убирает.
// Избранное ведется отдельно от закладок.
package favorite

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

// Service описывает интерфейс бизнес-логики избранных постов.
type Service interface {
	Favorite(ctx context.Context, postID int, userUID string) error
	Unfavorite(ctx context.Context, postID int, userUID string) error
}

// Handler обрабатывает HTTP-запросы избранных постов.
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
// @Summary Избранный пост
// @Description POST добавляет пост в избранное, DELETE убирает.
// @Security ApiKeyAuth
// @Tags Posts
// @Produce json
// @Param id path int true "ID поста"
// @Success 200 {object} response.Response "Готово"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Router /posts/{id}/favorite [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.favorite"

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

	if r.Method == http.MethodDelete {
		err = h.postService.Unfavorite(r.Context(), id, user.ID)
	} else {
		err = h.postService.Favorite(r.Context(), id, user.ID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "post not found"))
			return
		}
		log.Error("failed to toggle favorite post", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to toggle favorite post"))
		return
	}

	render.JSON(w, r, response.OK())
}
