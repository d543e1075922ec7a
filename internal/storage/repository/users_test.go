package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/social-network/internal/models"
)

func TestStorage_RegisterUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	verify := NewTestVerification(storage)
	digest := "verification-digest"

	user := models.User{
		Email:            "new@example.com",
		Username:         "newuser",
		PasswordHash:     "hashedpassword",
		Role:             models.RoleUser,
		VerificationCode: &digest,
	}

	uid, err := storage.RegisterUser(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, uid)
	verify.VerifyUserExists(t, uid)

	stored, err := storage.GetUser(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "newuser", stored.Username)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.False(t, stored.Active)
	require.NotNil(t, stored.VerificationCode)
	assert.Equal(t, digest, *stored.VerificationCode)

	t.Run("duplicate email", func(t *testing.T) {
		dup := user
		dup.Username = "otheruser"
		_, err := storage.RegisterUser(context.Background(), dup)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := user
		dup.Email = "other@example.com"
		_, err := storage.RegisterUser(context.Background(), dup)
		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestStorage_GetUserByIdentifier(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)

	t.Run("by username", func(t *testing.T) {
		u, err := storage.GetUserByIdentifier(context.Background(), data.Username)
		require.NoError(t, err)
		assert.Equal(t, data.UID, u.ID)
		assert.Equal(t, data.Email, u.Email)
	})

	t.Run("by email", func(t *testing.T) {
		u, err := storage.GetUserByIdentifier(context.Background(), data.Email)
		require.NoError(t, err)
		assert.Equal(t, data.UID, u.ID)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := storage.GetUserByIdentifier(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestStorage_ResetTokenLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)

	ctx := context.Background()
	digest := "reset-digest"

	require.NoError(t, storage.SetResetToken(ctx, data.UID, digest, time.Now().Add(10*time.Minute)))

	u, err := storage.GetUserByResetDigest(ctx, digest)
	require.NoError(t, err)
	assert.Equal(t, data.UID, u.ID)

	t.Run("expired digest does not match", func(t *testing.T) {
		require.NoError(t, storage.SetResetToken(ctx, data.UID, digest, time.Now().Add(-time.Minute)))
		_, err := storage.GetUserByResetDigest(ctx, digest)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("cleared digest does not match", func(t *testing.T) {
		require.NoError(t, storage.SetResetToken(ctx, data.UID, digest, time.Now().Add(10*time.Minute)))
		require.NoError(t, storage.ClearResetToken(ctx, data.UID))
		_, err := storage.GetUserByResetDigest(ctx, digest)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestStorage_UpdatePassword(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)

	ctx := context.Background()
	require.NoError(t, storage.SetResetToken(ctx, data.UID, "reset-digest", time.Now().Add(10*time.Minute)))

	require.NoError(t, storage.UpdatePassword(ctx, data.UID, "newhash"))

	u, err := storage.GetUser(ctx, data.UID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", u.PasswordHash)
	assert.Nil(t, u.PasswordResetToken)
	assert.Nil(t, u.PasswordResetExpires)
	require.NotNil(t, u.PasswordChangedAt)
	assert.WithinDuration(t, time.Now(), *u.PasswordChangedAt, time.Minute)
}

func TestStorage_ActivateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	digest := "verification-digest"
	uid, err := storage.RegisterUser(context.Background(), models.User{
		Email:            "new@example.com",
		Username:         "newuser",
		PasswordHash:     "hashedpassword",
		Role:             models.RoleUser,
		VerificationCode: &digest,
	})
	require.NoError(t, err)

	ctx := context.Background()
	u, err := storage.GetUserByVerificationDigest(ctx, digest)
	require.NoError(t, err)
	assert.Equal(t, uid, u.ID)

	require.NoError(t, storage.ActivateUser(ctx, uid))

	u, err = storage.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.True(t, u.Active)
	assert.Nil(t, u.VerificationCode)

	// Код подтверждения одноразовый
	_, err = storage.GetUserByVerificationDigest(ctx, digest)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_UpdateProfile(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)

	ctx := context.Background()
	err := storage.UpdateProfile(ctx, models.User{
		ID:       data.UID,
		Name:     "Test User",
		Bio:      "hello there",
		Gender:   "Other",
		DOB:      "1990-01-01",
		MobileNo: "79991234567",
	})
	require.NoError(t, err)

	u, err := storage.GetUser(ctx, data.UID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", u.Name)
	assert.Equal(t, "hello there", u.Bio)
	assert.Equal(t, "79991234567", u.MobileNo)

	t.Run("unknown user", func(t *testing.T) {
		err := storage.UpdateProfile(ctx, models.User{ID: "00000000-0000-0000-0000-000000000000"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestStorage_DeleteUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)
	postID := factory.CreatePost(t, data.UID, "my post", "")

	require.NoError(t, storage.DeleteUser(context.Background(), data.UID))
	verify.VerifyUserDeleted(t, data.UID)

	// Посты удаляются каскадно вместе с пользователем
	verify.VerifyPostDeleted(t, postID)

	t.Run("unknown user", func(t *testing.T) {
		err := storage.DeleteUser(context.Background(), "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
