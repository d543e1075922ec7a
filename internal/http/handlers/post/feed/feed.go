// Package feed реализует HTTP-обработчик ленты пользователя:
// его собственные посты и посты друзей, новые сверху.
package feed

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-network/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service описывает интерфейс бизнес-логики ленты.
type Service interface {
	Feed(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error)
}

// Handler обрабатывает HTTP-запросы ленты.
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

// ParsePagination извлекает limit и offset из query-параметров,
// подставляя значения по умолчанию и ограничивая limit сверху.
func ParsePagination(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// ServeHTTP godoc
// @Summary Лента пользователя
// @Description Возвращает посты пользователя и его друзей, новые сверху.
// @Security ApiKeyAuth
// @Tags Posts
// @Produce json
// @Param limit query int false "Максимум постов, по умолчанию 20, не больше 100"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Посты ленты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /posts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.feed"

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

	limit, offset := ParsePagination(r)
	posts, err := h.postService.Feed(r.Context(), user.ID, limit, offset)
	if err != nil {
		log.Error("failed to list feed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to list feed"))
		return
	}

	render.JSON(w, r, response.OKWithData(posts))
}
