// Package list реализует HTTP-обработчик списка уведомлений.
package list

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

// Service описывает интерфейс бизнес-логики уведомлений.
type Service interface {
	List(ctx context.Context, recipientUID string, limit, offset int) ([]*models.Notification, error)
}

// Handler обрабатывает HTTP-запросы списка уведомлений.
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
// @Summary Уведомления пользователя
// @Description Возвращает уведомления аутентифицированного пользователя, новые сверху.
// @Security ApiKeyAuth
// @Tags Notifications
// @Produce json
// @Param limit query int false "Максимум уведомлений, по умолчанию 20, не больше 100"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Уведомления"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Router /notifications [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.list"

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
	items, err := h.notificationService.List(r.Context(), user.ID, limit, offset)
	if err != nil {
		log.Error("failed to list notifications", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to list notifications"))
		return
	}

	render.JSON(w, r, response.OKWithData(items))
}
