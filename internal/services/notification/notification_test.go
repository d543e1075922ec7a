package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/social-network/internal/models"
	services "github.com/magabrotheeeer/social-network/internal/services/notification"
)

// Мок для NotificationRepository
type NotificationRepoMock struct {
	mock.Mock
}

func (m *NotificationRepoMock) CreateNotification(ctx context.Context, n models.Notification) (int, error) {
	args := m.Called(ctx, n)
	return args.Int(0), args.Error(1)
}

func (m *NotificationRepoMock) ListNotifications(ctx context.Context, recipientUID string, limit, offset int) ([]*models.Notification, error) {
	args := m.Called(ctx, recipientUID, limit, offset)
	items, _ := args.Get(0).([]*models.Notification)
	return items, args.Error(1)
}

func (m *NotificationRepoMock) MarkNotificationsRead(ctx context.Context, recipientUID string) (int, error) {
	args := m.Called(ctx, recipientUID)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestNotificationService_HandleActivityMessage(t *testing.T) {
	event := models.ActivityEvent{
		EventID:       "evt-1",
		Kind:          models.ActivityNewLike,
		ActorUID:      "uid-1",
		ActorName:     "testuser",
		RecipientUIDs: []string{"uid-2", "uid-3"},
		Message:       "testuser liked your post",
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	t.Run("creates a notification per recipient", func(t *testing.T) {
		repo := new(NotificationRepoMock)
		svc := services.NewNotificationService(repo, newNoopLogger())

		repo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
			return n.RecipientUID == "uid-2" && n.Kind == models.ActivityNewLike
		})).Return(1, nil).Once()
		repo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
			return n.RecipientUID == "uid-3"
		})).Return(2, nil).Once()

		require.NoError(t, svc.HandleActivityMessage(body))
		repo.AssertExpectations(t)
	})

	t.Run("repository error is returned for redelivery", func(t *testing.T) {
		repo := new(NotificationRepoMock)
		svc := services.NewNotificationService(repo, newNoopLogger())

		repo.On("CreateNotification", mock.Anything, mock.Anything).
			Return(0, errors.New("db error")).Once()

		assert.Error(t, svc.HandleActivityMessage(body))
	})

	t.Run("malformed message", func(t *testing.T) {
		svc := services.NewNotificationService(new(NotificationRepoMock), newNoopLogger())
		assert.Error(t, svc.HandleActivityMessage([]byte("not json")))
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	repo := new(NotificationRepoMock)
	svc := services.NewNotificationService(repo, newNoopLogger())

	repo.On("MarkNotificationsRead", mock.Anything, "uid-1").Return(4, nil).Once()

	count, err := svc.MarkRead(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
