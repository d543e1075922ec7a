// Package forgetpassword реализует HTTP-обработчик запроса сброса пароля.
//
// На почту уходит одноразовая ссылка; если письмо отправить не удалось,
// сохраненный токен сброса откатывается.
package forgetpassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	authservice "github.com/magabrotheeeer/social-network/internal/services/auth"
)

// Request — входные данные запроса сброса. Username принимает email или username.
type Request struct {
	Username string `json:"username" validate:"required"`
}

// Service описывает интерфейс бизнес-логики запроса сброса пароля.
type Service interface {
	ForgetPassword(ctx context.Context, identifier string) error
}

// Handler обрабатывает HTTP-запросы сброса пароля.
type Handler struct {
	log         *slog.Logger
	authService Service
	validate    *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService Service) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
		validate:    validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Запрос сброса пароля
// @Description Отправляет одноразовую ссылку сброса на почту пользователя.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Email или username"
// @Success 200 {object} response.Response "Письмо отправлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Письмо отправить не удалось"
// @Router /forgetpassword [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgetpassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	if err := h.authService.ForgetPassword(r.Context(), req.Username); err != nil {
		switch {
		case errors.Is(err, authservice.ErrUserNotFound):
			log.Error("forget password rejected", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "user not found"))
		case errors.Is(err, authservice.ErrEmailDelivery):
			log.Error("forget password delivery failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(http.StatusInternalServerError, err.Error()))
		default:
			log.Error("forget password failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(http.StatusInternalServerError, "internal error"))
		}
		return
	}

	log.Info("reset link sent", slog.String("identifier", req.Username))
	render.JSON(w, r, response.OK())
}
