package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/social-network/internal/models"
)

func TestStorage_CreateReadPost(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)

	ctx := context.Background()
	id, err := storage.CreatePost(ctx, models.Post{
		AuthorUID: data.UID,
		Content:   "hello world",
		ImageURL:  "https://example.com/pic.jpg",
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	p, err := storage.ReadPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, data.UID, p.AuthorUID)
	assert.Equal(t, data.Username, p.AuthorName)
	assert.Equal(t, "hello world", p.Content)
	assert.Equal(t, 0, p.LikesCount)

	t.Run("unknown post", func(t *testing.T) {
		_, err := storage.ReadPost(ctx, 9999)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestStorage_ListFeed(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	me := GetTestUserData()
	factory.CreateUser(t, me.UID, me.Username, me.Email, me.PasswordHash, me.Role, me.Active)
	friendUID := uuid.New().String()
	factory.CreateUser(t, friendUID, "frienduser", "friend@example.com", "hashedpassword", "user", true)
	strangerUID := uuid.New().String()
	factory.CreateUser(t, strangerUID, "stranger", "stranger@example.com", "hashedpassword", "user", true)
	factory.CreateFriendship(t, me.UID, friendUID)

	factory.CreatePost(t, me.UID, "my post", "")
	factory.CreatePost(t, friendUID, "friend post", "")
	factory.CreatePost(t, strangerUID, "stranger post", "")

	ctx := context.Background()
	posts, err := storage.ListFeed(ctx, me.UID, 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.NotEqual(t, strangerUID, p.AuthorUID)
	}

	t.Run("pagination", func(t *testing.T) {
		posts, err := storage.ListFeed(ctx, me.UID, 1, 1)
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})
}

func TestStorage_Likes(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)
	postID := factory.CreatePost(t, data.UID, "my post", "")

	ctx := context.Background()
	require.NoError(t, storage.LikePost(ctx, postID, data.UID))
	// Повторный лайк не дублируется
	require.NoError(t, storage.LikePost(ctx, postID, data.UID))

	p, err := storage.ReadPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.LikesCount)

	require.NoError(t, storage.UnlikePost(ctx, postID, data.UID))
	p, err = storage.ReadPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.LikesCount)
}

func TestStorage_SavedPosts(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)
	first := factory.CreatePost(t, data.UID, "first", "")
	second := factory.CreatePost(t, data.UID, "second", "")

	ctx := context.Background()
	require.NoError(t, storage.SavePost(ctx, first, data.UID))
	require.NoError(t, storage.SavePost(ctx, second, data.UID))
	require.NoError(t, storage.SavePost(ctx, second, data.UID))

	saved, err := storage.ListSavedPosts(ctx, data.UID, 20, 0)
	require.NoError(t, err)
	require.Len(t, saved, 2)

	require.NoError(t, storage.UnsavePost(ctx, first, data.UID))
	saved, err = storage.ListSavedPosts(ctx, data.UID, 20, 0)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, second, saved[0].ID)
}

func TestStorage_FavoritePosts(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)
	first := factory.CreatePost(t, data.UID, "first", "")
	second := factory.CreatePost(t, data.UID, "second", "")

	ctx := context.Background()
	require.NoError(t, storage.FavoritePost(ctx, first, data.UID))
	require.NoError(t, storage.FavoritePost(ctx, second, data.UID))
	require.NoError(t, storage.FavoritePost(ctx, second, data.UID))

	favorites, err := storage.ListFavoritePosts(ctx, data.UID, 20, 0)
	require.NoError(t, err)
	require.Len(t, favorites, 2)

	// Избранное и закладки ведутся раздельно
	saved, err := storage.ListSavedPosts(ctx, data.UID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, saved)

	require.NoError(t, storage.UnfavoritePost(ctx, first, data.UID))
	favorites, err = storage.ListFavoritePosts(ctx, data.UID, 20, 0)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, second, favorites[0].ID)
}

func TestStorage_CommentLikes(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)
	postID := factory.CreatePost(t, data.UID, "my post", "")

	ctx := context.Background()
	commentID, err := storage.CreateComment(ctx, models.Comment{
		PostID: postID, AuthorUID: data.UID, Content: "nice"})
	require.NoError(t, err)

	require.NoError(t, storage.LikeComment(ctx, commentID, data.UID))
	// Повторный лайк не дублируется
	require.NoError(t, storage.LikeComment(ctx, commentID, data.UID))

	comments, err := storage.ListComments(ctx, postID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, 1, comments[0].LikesCount)

	require.NoError(t, storage.UnlikeComment(ctx, commentID, data.UID))
	comments, err = storage.ListComments(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 0, comments[0].LikesCount)

	t.Run("unknown comment", func(t *testing.T) {
		err := storage.LikeComment(ctx, 9999, data.UID)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}

func TestStorage_Comments(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)
	postID := factory.CreatePost(t, data.UID, "my post", "")

	ctx := context.Background()
	firstID, err := storage.CreateComment(ctx, models.Comment{
		PostID: postID, AuthorUID: data.UID, Content: "first comment"})
	require.NoError(t, err)
	_, err = storage.CreateComment(ctx, models.Comment{
		PostID: postID, AuthorUID: data.UID, Content: "second comment"})
	require.NoError(t, err)

	comments, err := storage.ListComments(ctx, postID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	// Комментарии возвращаются в порядке создания
	assert.Equal(t, firstID, comments[0].ID)
	assert.Equal(t, "first comment", comments[0].Content)
	assert.Equal(t, data.Username, comments[0].AuthorName)
}

func TestStorage_RemovePost(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Username, data.Email, data.PasswordHash, data.Role, data.Active)
	postID := factory.CreatePost(t, data.UID, "my post", "")

	ctx := context.Background()
	count, err := storage.RemovePost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	verify.VerifyPostDeleted(t, postID)

	count, err = storage.RemovePost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
