// Package resetpassword реализует HTTP-обработчик смены пароля по ссылке из письма.
package resetpassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/social-network/internal/config"
	"github.com/magabrotheeeer/social-network/internal/http/cookie"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
	authservice "github.com/magabrotheeeer/social-network/internal/services/auth"
)

// Request — входные данные смены пароля по токену сброса.
type Request struct {
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Service описывает интерфейс бизнес-логики сброса пароля.
type Service interface {
	ResetPassword(ctx context.Context, rawToken, newPassword string) (string, *models.User, error)
}

// Handler обрабатывает HTTP-запросы сброса пароля.
type Handler struct {
	log         *slog.Logger
	authService Service
	cfg         *config.Config
	validate    *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService Service, cfg *config.Config) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
		cfg:         cfg,
		validate:    validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена пароля по токену сброса
// @Description Меняет пароль по одноразовому токену из письма и выдает новый сессионный токен.
// @Tags Auth
// @Accept json
// @Produce json
// @Param token path string true "Сырой токен сброса из письма"
// @Param request body Request true "Новый пароль"
// @Success 200 {object} response.TokenResponse "Пароль изменен"
// @Failure 400 {object} response.ErrorResponse "Неверный или истекший токен, ошибка валидации"
// @Router /resetpassword/{token} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetpassword"

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

	rawToken := chi.URLParam(r, "token")
	token, user, err := h.authService.ResetPassword(r.Context(), rawToken, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidOrExpiredToken) {
			log.Error("reset password rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(http.StatusBadRequest, "wrong token or token expired"))
			return
		}
		log.Error("reset password failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "internal error"))
		return
	}

	log.Info("password reset", slog.String("username", user.Username))
	cookie.SetSession(w, token, h.cfg.CookieTTLDays, h.cfg.IsProd())
	render.JSON(w, r, response.Token(token, user.Active, user.ID))
}
