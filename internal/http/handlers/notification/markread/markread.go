// Package markread реализует HTTP-обработчик отметки уведомлений прочитанными.
package markread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-network/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-network/internal/http/response"
	"github.com/magabrotheeeer/social-network/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики отметки уведомлений.
type Service interface {
	MarkRead(ctx context.Context, recipientUID string) (int, error)
}

// Handler обрабатывает HTTP-запросы отметки уведомлений.
type Handler struct {
	log                 *slog.Logger
	notificationService Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, notificationService Service) *Handler {
	return &Handler{
		log:                 log,
		notificationService: notificationService,
	}
}

// ServeHTTP godoc
// @Summary Отметка уведомлений прочитанными
// @Description Отмечает все уведомления пользователя прочитанными.
// @Security ApiKeyAuth
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Response "Количество отмеченных уведомлений"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /notifications/read [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.markread"

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

	count, err := h.notificationService.MarkRead(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to mark notifications read", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to mark notifications read"))
		return
	}

	log.Info("notifications marked read", slog.String("user", user.ID), slog.Int("count", count))
	render.JSON(w, r, response.OKWithData(map[string]int{"marked": count}))
}
