// Package services содержит бизнес-логику постов, комментариев, лайков
// и сохраненных постов, включая публикацию событий активности.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/social-network/internal/lib/sl"
	"github.com/magabrotheeeer/social-network/internal/models"
)

// ErrNotAllowed запрошенное действие доступно только автору или администратору.
var ErrNotAllowed = errors.New("you do not have permission to perform this action")

// PostRepository определяет методы для работы с постами в хранилище.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (int, error)
	ReadPost(ctx context.Context, id int) (*models.Post, error)
	ListFeed(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error)
	RemovePost(ctx context.Context, id int) (int, error)
	LikePost(ctx context.Context, postID int, userUID string) error
	UnlikePost(ctx context.Context, postID int, userUID string) error
	SavePost(ctx context.Context, postID int, userUID string) error
	UnsavePost(ctx context.Context, postID int, userUID string) error
	ListSavedPosts(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error)
	FavoritePost(ctx context.Context, postID int, userUID string) error
	UnfavoritePost(ctx context.Context, postID int, userUID string) error
	ListFavoritePosts(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error)
	CreateComment(ctx context.Context, comment models.Comment) (int, error)
	ListComments(ctx context.Context, postID int) ([]*models.Comment, error)
	LikeComment(ctx context.Context, commentID int, userUID string) error
	UnlikeComment(ctx context.Context, commentID int, userUID string) error
	ListFriendUIDs(ctx context.Context, userUID string) ([]string, error)
}

// EventPublisher публикует события активности для последующей доставки уведомлений.
type EventPublisher interface {
	PublishActivity(event models.ActivityEvent) error
}

// PostService реализует бизнес-логику работы с постами.
type PostService struct {
	repo      PostRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewPostService создает новый экземпляр PostService.
func NewPostService(repo PostRepository, publisher EventPublisher, log *slog.Logger) *PostService {
	return &PostService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// publishActivity отправляет событие активности. Сбой публикации логируется
// и никогда не проваливает исходный запрос.
func (s *PostService) publishActivity(kind string, actor *models.User, recipients []string, message string) {
	if len(recipients) == 0 {
		return
	}
	event := models.ActivityEvent{
		EventID:       uuid.New().String(),
		Kind:          kind,
		ActorUID:      actor.ID,
		ActorName:     actor.Username,
		RecipientUIDs: recipients,
		Message:       message,
	}
	if err := s.publisher.PublishActivity(event); err != nil {
		s.log.Error("failed to publish activity event", sl.Err(err),
			slog.String("kind", kind), slog.String("actor", actor.Username))
	}
}

// Create создает пост и уведомляет друзей автора.
func (s *PostService) Create(ctx context.Context, author *models.User, content, imageURL string) (int, error) {
	post := models.Post{
		AuthorUID: author.ID,
		Content:   content,
		ImageURL:  imageURL,
	}
	id, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new post", slog.Int("id", id))

	friends, err := s.repo.ListFriendUIDs(ctx, author.ID)
	if err != nil {
		s.log.Error("failed to list friends for activity event", sl.Err(err))
		return id, nil
	}
	s.publishActivity(models.ActivityNewPost, author, friends,
		fmt.Sprintf("%s published a new post", author.Username))
	return id, nil
}

// Read возвращает пост по ID.
func (s *PostService) Read(ctx context.Context, id int) (*models.Post, error) {
	return s.repo.ReadPost(ctx, id)
}

// Feed возвращает ленту пользователя: его посты и посты друзей.
func (s *PostService) Feed(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error) {
	return s.repo.ListFeed(ctx, userUID, limit, offset)
}

// Remove удаляет пост. Разрешено автору поста и администратору.
func (s *PostService) Remove(ctx context.Context, id int, requester *models.User) (int, error) {
	post, err := s.repo.ReadPost(ctx, id)
	if err != nil {
		return 0, err
	}
	if post.AuthorUID != requester.ID && requester.Role != models.RoleAdmin {
		return 0, ErrNotAllowed
	}
	return s.repo.RemovePost(ctx, id)
}

// Like отмечает пост лайком и уведомляет автора поста.
func (s *PostService) Like(ctx context.Context, postID int, user *models.User) error {
	post, err := s.repo.ReadPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.repo.LikePost(ctx, postID, user.ID); err != nil {
		return err
	}
	if post.AuthorUID != user.ID {
		s.publishActivity(models.ActivityNewLike, user, []string{post.AuthorUID},
			fmt.Sprintf("%s liked your post", user.Username))
	}
	return nil
}

// Unlike снимает лайк пользователя с поста.
func (s *PostService) Unlike(ctx context.Context, postID int, user *models.User) error {
	return s.repo.UnlikePost(ctx, postID, user.ID)
}

// Save добавляет пост в сохраненные, повторное сохранение не дублируется.
func (s *PostService) Save(ctx context.Context, postID int, userUID string) error {
	if _, err := s.repo.ReadPost(ctx, postID); err != nil {
		return err
	}
	return s.repo.SavePost(ctx, postID, userUID)
}

// Unsave убирает пост из сохраненных.
func (s *PostService) Unsave(ctx context.Context, postID int, userUID string) error {
	return s.repo.UnsavePost(ctx, postID, userUID)
}

// ListSaved возвращает сохраненные пользователем посты.
func (s *PostService) ListSaved(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error) {
	return s.repo.ListSavedPosts(ctx, userUID, limit, offset)
}

// Favorite добавляет пост в избранное, повторное добавление не дублируется.
func (s *PostService) Favorite(ctx context.Context, postID int, userUID string) error {
	if _, err := s.repo.ReadPost(ctx, postID); err != nil {
		return err
	}
	return s.repo.FavoritePost(ctx, postID, userUID)
}

// Unfavorite убирает пост из избранного.
func (s *PostService) Unfavorite(ctx context.Context, postID int, userUID string) error {
	return s.repo.UnfavoritePost(ctx, postID, userUID)
}

// ListFavorites возвращает избранные пользователем посты.
func (s *PostService) ListFavorites(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error) {
	return s.repo.ListFavoritePosts(ctx, userUID, limit, offset)
}

// AddComment добавляет комментарий и уведомляет автора поста.
func (s *PostService) AddComment(ctx context.Context, postID int, author *models.User, content string) (int, error) {
	post, err := s.repo.ReadPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	comment := models.Comment{
		PostID:    postID,
		AuthorUID: author.ID,
		Content:   content,
	}
	id, err := s.repo.CreateComment(ctx, comment)
	if err != nil {
		return 0, err
	}
	if post.AuthorUID != author.ID {
		s.publishActivity(models.ActivityNewComment, author, []string{post.AuthorUID},
			fmt.Sprintf("%s commented on your post", author.Username))
	}
	return id, nil
}

// Comments возвращает комментарии поста в порядке создания.
func (s *PostService) Comments(ctx context.Context, postID int) ([]*models.Comment, error) {
	return s.repo.ListComments(ctx, postID)
}

// LikeComment отмечает комментарий лайком, повторный лайк не дублируется.
func (s *PostService) LikeComment(ctx context.Context, commentID int, userUID string) error {
	return s.repo.LikeComment(ctx, commentID, userUID)
}

// UnlikeComment снимает лайк пользователя с комментария.
func (s *PostService) UnlikeComment(ctx context.Context, commentID int, userUID string) error {
	return s.repo.UnlikeComment(ctx, commentID, userUID)
}
