// Package favorites реализует HTTP-обработчик списка избранных постов.
package favorites

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-network/internal/http/handlers/post/feed"
	"github.com/magabrotheeeer/social-network/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
)

// Service описывает интерфейс бизнес-логики избранных постов.
type Service interface {
	ListFavorites(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error)
}

// Handler обрабатывает HTTP-запросы списка избранных постов.
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
// @Summary Избранные посты
// @Description Возвращает посты, добавленные пользователем в избранное, новые сверху.
// @Security ApiKeyAuth
// @Tags Posts
// @Produce json
// @Param limit query int false "Максимум постов, по умолчанию 20, не больше 100"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Избранные посты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /posts/favorites [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.favorites"

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

	limit, offset := feed.ParsePagination(r)
	posts, err := h.postService.ListFavorites(r.Context(), user.ID, limit, offset)
	if err != nil {
		log.Error("failed to list favorite posts", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to list favorite posts"))
		return
	}

	render.JSON(w, r, response.OKWithData(posts))
}
