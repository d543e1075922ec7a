// Package create реализует HTTP-обработчик добавления комментария к посту.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/social-network/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
	"github.com/magabrotheeeer/social-network/internal/storage/repository"
)

// Request — входные данные комментария.
type Request struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// Service описывает интерфейс бизнес-логики комментариев.
type Service interface {
	AddComment(ctx context.Context, postID int, author *models.User, content string) (int, error)
}

// Handler обрабатывает HTTP-запросы добавления комментариев.
type Handler struct {
	log         *slog.Logger
	postService Service
	validate    *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, postService Service) *Handler {
	return &Handler{
		log:         log,
		postService: postService,
		validate:    validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Комментарий к посту
// @Description Добавляет комментарий, автор поста получает уведомление.
// @Security ApiKeyAuth
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "ID поста"
// @Param request body Request true "Текст комментария"
// @Success 201 {object} response.Response "Комментарий добавлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Router /posts/{id}/comments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comment.create"

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

	postID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid post id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid post id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.postService.AddComment(r.Context(), postID, user, req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "post not found"))
			return
		}
		log.Error("failed to add comment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to add comment"))
		return
	}

	log.Info("comment added", slog.Int("id", id), slog.Int("post_id", postID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]int{"id": id}))
}
