// Package services содержит бизнес-логику уведомлений: чтение и отметку
// прочитанных, а также обработку событий активности из очереди.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
)

// NotificationRepository определяет методы для работы с уведомлениями в хранилище.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n models.Notification) (int, error)
	ListNotifications(ctx context.Context, recipientUID string, limit, offset int) ([]*models.Notification, error)
	MarkNotificationsRead(ctx context.Context, recipientUID string) (int, error)
}

// NotificationService реализует бизнес-логику уведомлений.
type NotificationService struct {
	repo NotificationRepository
	log  *slog.Logger
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(repo NotificationRepository, log *slog.Logger) *NotificationService {
	return &NotificationService{
		repo: repo,
		log:  log,
	}
}

// List возвращает уведомления пользователя, новые сверху.
func (s *NotificationService) List(ctx context.Context, recipientUID string, limit, offset int) ([]*models.Notification, error) {
	return s.repo.ListNotifications(ctx, recipientUID, limit, offset)
}

// MarkRead отмечает все уведомления пользователя прочитанными.
func (s *NotificationService) MarkRead(ctx context.Context, recipientUID string) (int, error) {
	return s.repo.MarkNotificationsRead(ctx, recipientUID)
}

// HandleActivityMessage обрабатывает событие активности из очереди:
// для каждого получателя создается персональное уведомление.
// Возврат ошибки приводит к nack и повторной доставке сообщения.
func (s *NotificationService) HandleActivityMessage(body []byte) error {
	var event models.ActivityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal activity event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	ctx := context.Background()
	for _, recipient := range event.RecipientUIDs {
		n := models.Notification{
			RecipientUID: recipient,
			ActorUID:     event.ActorUID,
			Kind:         event.Kind,
			Message:      event.Message,
		}
		if _, err := s.repo.CreateNotification(ctx, n); err != nil {
			s.log.Error("failed to create notification", sl.Err(err),
				slog.String("event_id", event.EventID), slog.String("recipient", recipient))
			return err
		}
	}
	s.log.Info("activity event processed", slog.String("event_id", event.EventID),
		slog.String("kind", event.Kind), slog.Int("recipients", len(event.RecipientUIDs)))
	return nil
}
