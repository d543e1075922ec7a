// Package verifyemail реализует HTTP-обработчик подтверждения почты.
//
// Код из письма срабатывает ровно один раз: после успеха его дайджест
// очищается, учетная запись становится активной.
package verifyemail

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-network/internal/config"
	"github.com/magabrotheeeer/social-network/internal/http/cookie"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
	authservice "github.com/magabrotheeeer/social-network/internal/services/auth"
)

// Service описывает интерфейс бизнес-логики подтверждения почты.
type Service interface {
	VerifyEmail(ctx context.Context, rawCode string) (string, *models.User, error)
}

// Handler обрабатывает HTTP-запросы подтверждения почты.
type Handler struct {
	log         *slog.Logger
	authService Service
	cfg         *config.Config
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService Service, cfg *config.Config) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
		cfg:         cfg,
	}
}

// ServeHTTP godoc
// @Summary Подтверждение почты
// @Description Активирует учетную запись по коду из письма и выдает сессионный токен.
// @Tags Auth
// @Produce json
// @Param code path string true "Сырой код подтверждения из письма"
// @Success 200 {object} response.TokenResponse "Почта подтверждена"
// @Failure 400 {object} response.ErrorResponse "Неверная ссылка"
// @Router /verifyemail/{code} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.verifyemail"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rawCode := chi.URLParam(r, "code")
	token, user, err := h.authService.VerifyEmail(r.Context(), rawCode)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidLink) {
			log.Error("email verification rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid registration link"))
			return
		}
		log.Error("email verification failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "internal error"))
		return
	}

	log.Info("email verified", slog.String("username", user.Username))
	cookie.SetSession(w, token, h.cfg.CookieTTLDays, h.cfg.IsProd())
	render.JSON(w, r, response.Token(token, user.Active, user.ID))
}
