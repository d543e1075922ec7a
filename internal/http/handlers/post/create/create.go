// Package create реализует HTTP-обработчик создания поста.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/social-network/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
)

// Request — входные данные создания поста.
type Request struct {
	Content  string `json:"content" validate:"required,max=2000"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// Service описывает интерфейс бизнес-логики создания поста.
type Service interface {
	Create(ctx context.Context, author *models.User, content, imageURL string) (int, error)
}

// Handler обрабатывает HTTP-запросы создания поста.
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
// @Summary Создание поста
// @Description Создает новый пост от имени аутентифицированного пользователя.
// @Security ApiKeyAuth
// @Tags Posts
// @Accept json
// @Produce json
// @Param request body Request true "Содержимое поста"
// @Success 201 {object} response.Response "Пост создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /posts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.create"

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

	id, err := h.postService.Create(r.Context(), user, req.Content, req.ImageURL)
	if err != nil {
		log.Error("failed to create post", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to create post"))
		return
	}

	log.Info("post created", slog.Int("id", id), slog.String("author", user.Username))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]int{"id": id}))
}
