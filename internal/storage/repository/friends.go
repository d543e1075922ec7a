package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/social-network/internal/models"
)

// Ошибки хранилища друзей.
var (
	ErrRequestNotFound = errors.New("friend request not found")
)

// CreateFriendRequest сохраняет заявку в друзья и возвращает ее ID.
// Повторная заявка той же пары пользователей не создается.
func (s *Storage) CreateFriendRequest(ctx context.Context, senderUID, recipientUID string) (int, error) {
	const op = "storage.CreateFriendRequest"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO friend_requests (sender_uid, recipient_uid)
			  VALUES ($1, $2)
			  ON CONFLICT (sender_uid, recipient_uid) DO UPDATE SET sent_at = friend_requests.sent_at
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, senderUID, recipientUID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// AcceptFriendRequest удаляет заявку и создает симметричную дружбу
// в одной транзакции.
func (s *Storage) AcceptFriendRequest(ctx context.Context, requestID int, recipientUID string) error {
	const op = "storage.AcceptFriendRequest"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var senderUID string
	query := `DELETE FROM friend_requests
			  WHERE id = $1 AND recipient_uid = $2
			  RETURNING sender_uid`
	if err := tx.QueryRowContext(ctx, query, requestID, recipientUID).Scan(&senderUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, ErrRequestNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO friends (user_uid, friend_uid)
			 VALUES ($1, $2), ($2, $1)
			 ON CONFLICT DO NOTHING`
	if _, err := tx.ExecContext(ctx, query, recipientUID, senderUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeclineFriendRequest удаляет заявку без создания дружбы.
// Отклонить заявку может только ее получатель.
func (s *Storage) DeclineFriendRequest(ctx context.Context, requestID int, recipientUID string) error {
	const op = "storage.DeclineFriendRequest"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM friend_requests WHERE id = $1 AND recipient_uid = $2`,
		requestID, recipientUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrRequestNotFound)
	}
	return nil
}

// ListFriends возвращает друзей пользователя.
func (s *Storage) ListFriends(ctx context.Context, userUID string) ([]*models.User, error) {
	const op = "storage.ListFriends"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid IN (SELECT friend_uid FROM friends WHERE user_uid = $1)
			  ORDER BY username`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListFriendUIDs возвращает идентификаторы друзей пользователя.
// Используется при вычислении получателей событий активности.
func (s *Storage) ListFriendUIDs(ctx context.Context, userUID string) ([]string, error) {
	const op = "storage.ListFriendUIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT friend_uid FROM friends WHERE user_uid = $1`, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []string
	for rows.Next() {
		var uid string
		if err = rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, uid)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListFriendRequests возвращает входящие заявки пользователя, новые сверху.
func (s *Storage) ListFriendRequests(ctx context.Context, recipientUID string) ([]*models.FriendRequest, error) {
	const op = "storage.ListFriendRequests"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT fr.id, fr.sender_uid, u.username, fr.recipient_uid, fr.sent_at
			  FROM friend_requests fr
			  JOIN users u ON u.uid = fr.sender_uid
			  WHERE fr.recipient_uid = $1
			  ORDER BY fr.sent_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, recipientUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.FriendRequest
	for rows.Next() {
		fr := &models.FriendRequest{}
		if err = rows.Scan(&fr.ID, &fr.SenderUID, &fr.SenderName,
			&fr.RecipientUID, &fr.SentAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, fr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveFriend разрывает дружбу в обе стороны.
func (s *Storage) RemoveFriend(ctx context.Context, userUID, friendUID string) error {
	const op = "storage.RemoveFriend"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM friends
			  WHERE (user_uid = $1 AND friend_uid = $2)
			     OR (user_uid = $2 AND friend_uid = $1)`
	if _, err := s.DB.ExecContext(ctx, query, userUID, friendUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
