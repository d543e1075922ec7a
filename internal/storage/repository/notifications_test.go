package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/social-network/internal/models"
)

func TestStorage_Notifications(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	recipient := GetTestUserData()
	factory.CreateUser(t, recipient.UID, recipient.Username, recipient.Email, recipient.PasswordHash, recipient.Role, recipient.Active)
	actorUID := uuid.New().String()
	factory.CreateUser(t, actorUID, "actor", "actor@example.com", "hashedpassword", "user", true)

	ctx := context.Background()
	for _, message := range []string{"actor liked your post", "actor commented on your post"} {
		_, err := storage.CreateNotification(ctx, models.Notification{
			RecipientUID: recipient.UID,
			ActorUID:     actorUID,
			Kind:         models.ActivityNewLike,
			Message:      message,
		})
		require.NoError(t, err)
	}

	items, err := storage.ListNotifications(ctx, recipient.UID, 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "actor", items[0].ActorName)
	assert.False(t, items[0].IsRead)

	t.Run("pagination", func(t *testing.T) {
		items, err := storage.ListNotifications(ctx, recipient.UID, 1, 0)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	count, err := storage.MarkNotificationsRead(ctx, recipient.UID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	items, err = storage.ListNotifications(ctx, recipient.UID, 20, 0)
	require.NoError(t, err)
	for _, n := range items {
		assert.True(t, n.IsRead)
	}

	// Повторная отметка ничего не обновляет
	count, err = storage.MarkNotificationsRead(ctx, recipient.UID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
