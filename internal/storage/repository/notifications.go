package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/social-network/internal/models"
)

// CreateNotification сохраняет уведомление для получателя.
func (s *Storage) CreateNotification(ctx context.Context, n models.Notification) (int, error) {
	const op = "storage.CreateNotification"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO notifications (recipient_uid, actor_uid, kind, message)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		n.RecipientUID, n.ActorUID, n.Kind, n.Message).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListNotifications возвращает уведомления пользователя, новые сверху.
func (s *Storage) ListNotifications(ctx context.Context, recipientUID string, limit, offset int) ([]*models.Notification, error) {
	const op = "storage.ListNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT n.id, n.recipient_uid, n.actor_uid, u.username, n.kind, n.message, n.is_read, n.created_at
			  FROM notifications n
			  JOIN users u ON u.uid = n.actor_uid
			  WHERE n.recipient_uid = $1
			  ORDER BY n.created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, recipientUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err = rows.Scan(&n.ID, &n.RecipientUID, &n.ActorUID, &n.ActorName,
			&n.Kind, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkNotificationsRead отмечает все уведомления пользователя прочитанными
// и возвращает количество обновленных записей.
func (s *Storage) MarkNotificationsRead(ctx context.Context, recipientUID string) (int, error) {
	const op = "storage.MarkNotificationsRead"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_uid = $1 AND is_read = FALSE`,
		recipientUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}
