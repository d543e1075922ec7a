// Package saved реализует HTTP-обработчик списка сохраненных постов.
package saved

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

// Service описывает интерфейс бизнес-логики сохраненных постов.
type Service interface {
	ListSaved(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error)
}

// Handler обрабатывает HTTP-запросы списка сохраненных постов.
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
// @Summary Сохраненные посты
// @Description Возвращает посты, сохраненные пользователем, новые сверху.
// @Security ApiKeyAuth
// @Tags Posts
// @Produce json
// @Param limit query int false "Максимум постов, по умолчанию 20, не больше 100"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Сохраненные посты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /posts/saved [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.saved"

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
	posts, err := h.postService.ListSaved(r.Context(), user.ID, limit, offset)
	if err != nil {
		log.Error("failed to list saved posts", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to list saved posts"))
		return
	}

	render.JSON(w, r, response.OKWithData(posts))
}
