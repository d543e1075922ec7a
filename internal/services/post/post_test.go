package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/social-network/internal/models"
	services "github.com/magabrotheeeer/social-network/internal/services/post"
	"github.com/magabrotheeeer/social-network/internal/storage/repository"
)

// Мок для PostRepository
type PostRepoMock struct {
	mock.Mock
}

func (m *PostRepoMock) CreatePost(ctx context.Context, post models.Post) (int, error) {
	args := m.Called(ctx, post)
	return args.Int(0), args.Error(1)
}

func (m *PostRepoMock) ReadPost(ctx context.Context, id int) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *PostRepoMock) ListFeed(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, userUID, limit, offset)
	posts, _ := args.Get(0).([]*models.Post)
	return posts, args.Error(1)
}

func (m *PostRepoMock) RemovePost(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *PostRepoMock) LikePost(ctx context.Context, postID int, userUID string) error {
	args := m.Called(ctx, postID, userUID)
	return args.Error(0)
}

func (m *PostRepoMock) UnlikePost(ctx context.Context, postID int, userUID string) error {
	args := m.Called(ctx, postID, userUID)
	return args.Error(0)
}

func (m *PostRepoMock) SavePost(ctx context.Context, postID int, userUID string) error {
	args := m.Called(ctx, postID, userUID)
	return args.Error(0)
}

func (m *PostRepoMock) UnsavePost(ctx context.Context, postID int, userUID string) error {
	args := m.Called(ctx, postID, userUID)
	return args.Error(0)
}

func (m *PostRepoMock) ListSavedPosts(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, userUID, limit, offset)
	posts, _ := args.Get(0).([]*models.Post)
	return posts, args.Error(1)
}

func (m *PostRepoMock) FavoritePost(ctx context.Context, postID int, userUID string) error {
	args := m.Called(ctx, postID, userUID)
	return args.Error(0)
}

func (m *PostRepoMock) UnfavoritePost(ctx context.Context, postID int, userUID string) error {
	args := m.Called(ctx, postID, userUID)
	return args.Error(0)
}

func (m *PostRepoMock) ListFavoritePosts(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, userUID, limit, offset)
	posts, _ := args.Get(0).([]*models.Post)
	return posts, args.Error(1)
}

func (m *PostRepoMock) CreateComment(ctx context.Context, comment models.Comment) (int, error) {
	args := m.Called(ctx, comment)
	return args.Int(0), args.Error(1)
}

func (m *PostRepoMock) ListComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]*models.Comment)
	return comments, args.Error(1)
}

func (m *PostRepoMock) LikeComment(ctx context.Context, commentID int, userUID string) error {
	args := m.Called(ctx, commentID, userUID)
	return args.Error(0)
}

func (m *PostRepoMock) UnlikeComment(ctx context.Context, commentID int, userUID string) error {
	args := m.Called(ctx, commentID, userUID)
	return args.Error(0)
}

func (m *PostRepoMock) ListFriendUIDs(ctx context.Context, userUID string) ([]string, error) {
	args := m.Called(ctx, userUID)
	uids, _ := args.Get(0).([]string)
	return uids, args.Error(1)
}

// Мок для EventPublisher
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishActivity(event models.ActivityEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestPostService_Create(t *testing.T) {
	author := &models.User{ID: "uid-1", Username: "testuser", Role: models.RoleUser}

	t.Run("notifies friends about new post", func(t *testing.T) {
		repo := new(PostRepoMock)
		pub := new(PublisherMock)
		svc := services.NewPostService(repo, pub, newNoopLogger())

		repo.On("CreatePost", mock.Anything, mock.MatchedBy(func(p models.Post) bool {
			return p.AuthorUID == "uid-1" && p.Content == "hello"
		})).Return(7, nil).Once()
		repo.On("ListFriendUIDs", mock.Anything, "uid-1").Return([]string{"uid-2", "uid-3"}, nil).Once()
		pub.On("PublishActivity", mock.MatchedBy(func(e models.ActivityEvent) bool {
			return e.Kind == models.ActivityNewPost && len(e.RecipientUIDs) == 2 && e.ActorUID == "uid-1"
		})).Return(nil).Once()

		id, err := svc.Create(context.Background(), author, "hello", "")
		require.NoError(t, err)
		assert.Equal(t, 7, id)

		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("no friends means no event", func(t *testing.T) {
		repo := new(PostRepoMock)
		pub := new(PublisherMock)
		svc := services.NewPostService(repo, pub, newNoopLogger())

		repo.On("CreatePost", mock.Anything, mock.Anything).Return(8, nil).Once()
		repo.On("ListFriendUIDs", mock.Anything, "uid-1").Return([]string{}, nil).Once()

		_, err := svc.Create(context.Background(), author, "hello", "")
		require.NoError(t, err)

		pub.AssertNotCalled(t, "PublishActivity", mock.Anything)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		repo := new(PostRepoMock)
		pub := new(PublisherMock)
		svc := services.NewPostService(repo, pub, newNoopLogger())

		repo.On("CreatePost", mock.Anything, mock.Anything).Return(9, nil).Once()
		repo.On("ListFriendUIDs", mock.Anything, "uid-1").Return([]string{"uid-2"}, nil).Once()
		pub.On("PublishActivity", mock.Anything).Return(errors.New("broker down")).Once()

		id, err := svc.Create(context.Background(), author, "hello", "")
		require.NoError(t, err)
		assert.Equal(t, 9, id)
	})
}

func TestPostService_Remove(t *testing.T) {
	post := &models.Post{ID: 7, AuthorUID: "uid-1"}

	tests := []struct {
		name      string
		requester *models.User
		wantErr   error
	}{
		{
			name:      "author can remove",
			requester: &models.User{ID: "uid-1", Role: models.RoleUser},
		},
		{
			name:      "admin can remove",
			requester: &models.User{ID: "uid-9", Role: models.RoleAdmin},
		},
		{
			name:      "stranger cannot remove",
			requester: &models.User{ID: "uid-2", Role: models.RoleUser},
			wantErr:   services.ErrNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(PostRepoMock)
			svc := services.NewPostService(repo, new(PublisherMock), newNoopLogger())

			repo.On("ReadPost", mock.Anything, 7).Return(post, nil).Once()
			if tt.wantErr == nil {
				repo.On("RemovePost", mock.Anything, 7).Return(1, nil).Once()
			}

			count, err := svc.Remove(context.Background(), 7, tt.requester)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, count)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestPostService_Like(t *testing.T) {
	post := &models.Post{ID: 7, AuthorUID: "uid-1"}

	t.Run("liking someone's post notifies the author", func(t *testing.T) {
		repo := new(PostRepoMock)
		pub := new(PublisherMock)
		svc := services.NewPostService(repo, pub, newNoopLogger())

		liker := &models.User{ID: "uid-2", Username: "friend"}
		repo.On("ReadPost", mock.Anything, 7).Return(post, nil).Once()
		repo.On("LikePost", mock.Anything, 7, "uid-2").Return(nil).Once()
		pub.On("PublishActivity", mock.MatchedBy(func(e models.ActivityEvent) bool {
			return e.Kind == models.ActivityNewLike && e.RecipientUIDs[0] == "uid-1"
		})).Return(nil).Once()

		require.NoError(t, svc.Like(context.Background(), 7, liker))
		pub.AssertExpectations(t)
	})

	t.Run("liking own post stays silent", func(t *testing.T) {
		repo := new(PostRepoMock)
		pub := new(PublisherMock)
		svc := services.NewPostService(repo, pub, newNoopLogger())

		author := &models.User{ID: "uid-1", Username: "testuser"}
		repo.On("ReadPost", mock.Anything, 7).Return(post, nil).Once()
		repo.On("LikePost", mock.Anything, 7, "uid-1").Return(nil).Once()

		require.NoError(t, svc.Like(context.Background(), 7, author))
		pub.AssertNotCalled(t, "PublishActivity", mock.Anything)
	})
}

func TestPostService_Favorite(t *testing.T) {
	post := &models.Post{ID: 7, AuthorUID: "uid-1"}

	t.Run("existing post", func(t *testing.T) {
		repo := new(PostRepoMock)
		svc := services.NewPostService(repo, new(PublisherMock), newNoopLogger())

		repo.On("ReadPost", mock.Anything, 7).Return(post, nil).Once()
		repo.On("FavoritePost", mock.Anything, 7, "uid-2").Return(nil).Once()

		require.NoError(t, svc.Favorite(context.Background(), 7, "uid-2"))
		repo.AssertExpectations(t)
	})

	t.Run("unknown post", func(t *testing.T) {
		repo := new(PostRepoMock)
		svc := services.NewPostService(repo, new(PublisherMock), newNoopLogger())

		repo.On("ReadPost", mock.Anything, 9).Return(nil, repository.ErrPostNotFound).Once()

		err := svc.Favorite(context.Background(), 9, "uid-2")
		assert.ErrorIs(t, err, repository.ErrPostNotFound)
		repo.AssertNotCalled(t, "FavoritePost", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPostService_LikeComment(t *testing.T) {
	repo := new(PostRepoMock)
	svc := services.NewPostService(repo, new(PublisherMock), newNoopLogger())

	repo.On("LikeComment", mock.Anything, 3, "uid-2").
		Return(repository.ErrCommentNotFound).Once()

	err := svc.LikeComment(context.Background(), 3, "uid-2")
	assert.ErrorIs(t, err, repository.ErrCommentNotFound)
}

func TestPostService_AddComment(t *testing.T) {
	post := &models.Post{ID: 7, AuthorUID: "uid-1"}
	commenter := &models.User{ID: "uid-2", Username: "friend"}

	repo := new(PostRepoMock)
	pub := new(PublisherMock)
	svc := services.NewPostService(repo, pub, newNoopLogger())

	repo.On("ReadPost", mock.Anything, 7).Return(post, nil).Once()
	repo.On("CreateComment", mock.Anything, mock.MatchedBy(func(c models.Comment) bool {
		return c.PostID == 7 && c.AuthorUID == "uid-2" && c.Content == "nice"
	})).Return(3, nil).Once()
	pub.On("PublishActivity", mock.MatchedBy(func(e models.ActivityEvent) bool {
		return e.Kind == models.ActivityNewComment && e.RecipientUIDs[0] == "uid-1"
	})).Return(nil).Once()

	id, err := svc.AddComment(context.Background(), 7, commenter, "nice")
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}
