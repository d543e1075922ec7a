package models

import "time"

// Типы событий активности, порождающих уведомления.
const (
	ActivityNewPost       = "new_post"
	ActivityNewComment    = "new_comment"
	ActivityNewLike       = "new_like"
	ActivityFriendRequest = "friend_request"
)

// Notification представляет персональное уведомление пользователя.
type Notification struct {
	ID           int       `json:"id"`
	RecipientUID string    `json:"recipient_uid"`
	ActorUID     string    `json:"actor_uid"`
	ActorName    string    `json:"actor_name,omitempty"`
	Kind         string    `json:"kind"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

// ActivityEvent сообщение о событии активности, публикуемое в RabbitMQ.
// Доставка идет по принципу fire-and-forget: сбой публикации логируется,
// но не проваливает исходный запрос.
type ActivityEvent struct {
	EventID       string   `json:"event_id"`
	Kind          string   `json:"kind"`
	ActorUID      string   `json:"actor_uid"`
	ActorName     string   `json:"actor_name"`
	RecipientUIDs []string `json:"recipient_uids"`
	Message       string   `json:"message"`
}
