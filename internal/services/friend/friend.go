// Package services содержит бизнес-логику заявок в друзья и списка друзей.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
)

// FriendRepository определяет методы для работы с друзьями в хранилище.
type FriendRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	CreateFriendRequest(ctx context.Context, senderUID, recipientUID string) (int, error)
	AcceptFriendRequest(ctx context.Context, requestID int, recipientUID string) error
	DeclineFriendRequest(ctx context.Context, requestID int, recipientUID string) error
	ListFriends(ctx context.Context, userUID string) ([]*models.User, error)
	ListFriendRequests(ctx context.Context, recipientUID string) ([]*models.FriendRequest, error)
	RemoveFriend(ctx context.Context, userUID, friendUID string) error
}

// EventPublisher публикует события активности для последующей доставки уведомлений.
type EventPublisher interface {
	PublishActivity(event models.ActivityEvent) error
}

// FriendService реализует бизнес-логику дружеских связей.
type FriendService struct {
	repo      FriendRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewFriendService создает новый экземпляр FriendService.
func NewFriendService(repo FriendRepository, publisher EventPublisher, log *slog.Logger) *FriendService {
	return &FriendService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// SendRequest создает заявку в друзья и уведомляет получателя.
func (s *FriendService) SendRequest(ctx context.Context, sender *models.User, recipientUID string) (int, error) {
	if _, err := s.repo.GetUser(ctx, recipientUID); err != nil {
		return 0, err
	}
	id, err := s.repo.CreateFriendRequest(ctx, sender.ID, recipientUID)
	if err != nil {
		return 0, err
	}

	event := models.ActivityEvent{
		EventID:       uuid.New().String(),
		Kind:          models.ActivityFriendRequest,
		ActorUID:      sender.ID,
		ActorName:     sender.Username,
		RecipientUIDs: []string{recipientUID},
		Message:       fmt.Sprintf("%s sent you a friend request", sender.Username),
	}
	if err := s.publisher.PublishActivity(event); err != nil {
		s.log.Error("failed to publish activity event", sl.Err(err),
			slog.String("kind", event.Kind), slog.String("actor", sender.Username))
	}
	return id, nil
}

// Accept принимает заявку: заявка удаляется, дружба создается в обе стороны.
func (s *FriendService) Accept(ctx context.Context, requestID int, recipientUID string) error {
	return s.repo.AcceptFriendRequest(ctx, requestID, recipientUID)
}

// Decline отклоняет заявку: заявка удаляется, дружба не создается.
func (s *FriendService) Decline(ctx context.Context, requestID int, recipientUID string) error {
	return s.repo.DeclineFriendRequest(ctx, requestID, recipientUID)
}

// List возвращает друзей пользователя.
func (s *FriendService) List(ctx context.Context, userUID string) ([]*models.User, error) {
	return s.repo.ListFriends(ctx, userUID)
}

// ListRequests возвращает входящие заявки пользователя.
func (s *FriendService) ListRequests(ctx context.Context, recipientUID string) ([]*models.FriendRequest, error) {
	return s.repo.ListFriendRequests(ctx, recipientUID)
}

// Remove разрывает дружбу в обе стороны.
func (s *FriendService) Remove(ctx context.Context, userUID, friendUID string) error {
	return s.repo.RemoveFriend(ctx, userUID, friendUID)
}
