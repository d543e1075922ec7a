package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/social-network/internal/models"
)

// Ошибки хранилища постов.
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// CreatePost сохраняет новый пост и возвращает его ID.
func (s *Storage) CreatePost(ctx context.Context, post models.Post) (int, error) {
	const op = "storage.CreatePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO posts (author_uid, content, image_url)
			  VALUES ($1, $2, $3)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		post.AuthorUID, post.Content, post.ImageURL).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadPost возвращает пост по ID вместе с именем автора и числом лайков.
func (s *Storage) ReadPost(ctx context.Context, id int) (*models.Post, error) {
	const op = "storage.ReadPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.author_uid, u.username, p.content, p.image_url,
			      (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id), p.created_at
			  FROM posts p
			  JOIN users u ON u.uid = p.author_uid
			  WHERE p.id = $1`
	p := &models.Post{}
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.AuthorUID, &p.AuthorName,
		&p.Content, &p.ImageURL, &p.LikesCount, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListFeed возвращает посты пользователя и его друзей с пагинацией,
// новые сверху.
func (s *Storage) ListFeed(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error) {
	const op = "storage.ListFeed"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.author_uid, u.username, p.content, p.image_url,
			      (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id), p.created_at
			  FROM posts p
			  JOIN users u ON u.uid = p.author_uid
			  WHERE p.author_uid = $1
			     OR p.author_uid IN (SELECT friend_uid FROM friends WHERE user_uid = $1)
			  ORDER BY p.created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Post
	for rows.Next() {
		p := &models.Post{}
		if err = rows.Scan(&p.ID, &p.AuthorUID, &p.AuthorName, &p.Content, &p.ImageURL,
			&p.LikesCount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemovePost удаляет пост по ID и возвращает количество удалённых записей.
func (s *Storage) RemovePost(ctx context.Context, id int) (int, error) {
	const op = "storage.RemovePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

// LikePost отмечает пост лайком пользователя, повторный лайк не дублируется.
func (s *Storage) LikePost(ctx context.Context, postID int, userUID string) error {
	const op = "storage.LikePost"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO post_likes (post_id, user_uid)
			  VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, postID, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UnlikePost снимает лайк пользователя с поста.
func (s *Storage) UnlikePost(ctx context.Context, postID int, userUID string) error {
	const op = "storage.UnlikePost"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, postID, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SavePost добавляет пост в сохраненные пользователя, дубликаты не создаются.
func (s *Storage) SavePost(ctx context.Context, postID int, userUID string) error {
	const op = "storage.SavePost"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO saved_posts (post_id, user_uid)
			  VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, postID, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UnsavePost убирает пост из сохраненных пользователя.
func (s *Storage) UnsavePost(ctx context.Context, postID int, userUID string) error {
	const op = "storage.UnsavePost"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM saved_posts WHERE post_id = $1 AND user_uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, postID, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListSavedPosts возвращает сохраненные пользователем посты, новые сверху.
func (s *Storage) ListSavedPosts(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error) {
	const op = "storage.ListSavedPosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.author_uid, u.username, p.content, p.image_url,
			      (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id), p.created_at
			  FROM saved_posts sp
			  JOIN posts p ON p.id = sp.post_id
			  JOIN users u ON u.uid = p.author_uid
			  WHERE sp.user_uid = $1
			  ORDER BY sp.created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Post
	for rows.Next() {
		p := &models.Post{}
		if err = rows.Scan(&p.ID, &p.AuthorUID, &p.AuthorName, &p.Content, &p.ImageURL,
			&p.LikesCount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FavoritePost добавляет пост в избранное пользователя, дубликаты не создаются.
// Избранное хранится отдельно от закладок.
func (s *Storage) FavoritePost(ctx context.Context, postID int, userUID string) error {
	const op = "storage.FavoritePost"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO favorites (post_id, user_uid)
			  VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, postID, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UnfavoritePost убирает пост из избранного пользователя.
func (s *Storage) UnfavoritePost(ctx context.Context, postID int, userUID string) error {
	const op = "storage.UnfavoritePost"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM favorites WHERE post_id = $1 AND user_uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, postID, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListFavoritePosts возвращает избранные пользователем посты, новые сверху.
func (s *Storage) ListFavoritePosts(ctx context.Context, userUID string, limit, offset int) ([]*models.Post, error) {
	const op = "storage.ListFavoritePosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.author_uid, u.username, p.content, p.image_url,
			      (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id), p.created_at
			  FROM favorites f
			  JOIN posts p ON p.id = f.post_id
			  JOIN users u ON u.uid = p.author_uid
			  WHERE f.user_uid = $1
			  ORDER BY f.created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Post
	for rows.Next() {
		p := &models.Post{}
		if err = rows.Scan(&p.ID, &p.AuthorUID, &p.AuthorName, &p.Content, &p.ImageURL,
			&p.LikesCount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateComment сохраняет комментарий к посту и возвращает его ID.
func (s *Storage) CreateComment(ctx context.Context, comment models.Comment) (int, error) {
	const op = "storage.CreateComment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO comments (post_id, author_uid, content)
			  VALUES ($1, $2, $3)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		comment.PostID, comment.AuthorUID, comment.Content).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListComments возвращает комментарии поста в порядке создания.
func (s *Storage) ListComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	const op = "storage.ListComments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.post_id, c.author_uid, u.username, c.content,
			      (SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.id), c.created_at
			  FROM comments c
			  JOIN users u ON u.uid = c.author_uid
			  WHERE c.post_id = $1
			  ORDER BY c.created_at ASC`
	rows, err := s.DB.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Comment
	for rows.Next() {
		c := &models.Comment{}
		if err = rows.Scan(&c.ID, &c.PostID, &c.AuthorUID, &c.AuthorName,
			&c.Content, &c.LikesCount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// LikeComment отмечает комментарий лайком, повторный лайк не дублируется.
func (s *Storage) LikeComment(ctx context.Context, commentID int, userUID string) error {
	const op = "storage.LikeComment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO comment_likes (comment_id, user_uid)
			  VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, commentID, userUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%s: %w", op, ErrCommentNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UnlikeComment снимает лайк пользователя с комментария.
func (s *Storage) UnlikeComment(ctx context.Context, commentID int, userUID string) error {
	const op = "storage.UnlikeComment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM comment_likes WHERE comment_id = $1 AND user_uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, commentID, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
