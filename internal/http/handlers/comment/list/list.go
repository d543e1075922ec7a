// Package list реализует HTTP-обработчик списка комментариев поста.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
	"github.com/magabrotheeeer/social-network/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики комментариев.
type Service interface {
	Comments(ctx context.Context, postID int) ([]*models.Comment, error)
}

// Handler обрабатывает HTTP-запросы списка комментариев.
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
// @Summary Комментарии поста
// @Description Возвращает комментарии поста в порядке создания.
// @Security ApiKeyAuth
// @Tags Comments
// @Produce json
// @Param id path int true "ID поста"
// @Success 200 {object} response.Response "Комментарии"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Router /posts/{id}/comments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	postID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid post id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid post id"))
		return
	}

	comments, err := h.postService.Comments(r.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "post not found"))
			return
		}
		log.Error("failed to list comments", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to list comments"))
		return
	}

	render.JSON(w, r, response.OKWithData(comments))
}
