// Package request реализует HTTP-обработчик отправки заявки в друзья.
package request

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/social-network/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
	"github.com/magabrotheeeer/social-network/internal/storage/repository"
)

// Request — входные данные заявки в друзья.
type Request struct {
	RecipientUID string `json:"recipient_uid" validate:"required"`
}

// Service описывает интерфейс бизнес-логики заявок в друзья.
type Service interface {
	SendRequest(ctx context.Context, sender *models.User, recipientUID string) (int, error)
}

// Handler обрабатывает HTTP-запросы отправки заявок.
type Handler struct {
	log           *slog.Logger
	friendService Service
	validate      *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, friendService Service) *Handler {
	return &Handler{
		log:           log,
		friendService: friendService,
		validate:      validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Заявка в друзья
// @Description Отправляет заявку в друзья, получатель уведомляется.
// @Security ApiKeyAuth
// @Tags Friends
// @Accept json
// @Produce json
// @Param request body Request true "UID получателя"
// @Success 201 {object} response.Response "Заявка отправлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Получатель не найден"
// @Router /friends/requests [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.friend.request"

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

	if req.RecipientUID == user.ID {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "cannot send a friend request to yourself"))
		return
	}

	id, err := h.friendService.SendRequest(r.Context(), user, req.RecipientUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "user not found"))
			return
		}
		log.Error("failed to send friend request", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to send friend request"))
		return
	}

	log.Info("friend request sent", slog.Int("id", id), slog.String("sender", user.Username))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]int{"id": id}))
}
