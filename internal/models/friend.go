package models

import "time"

// FriendRequest представляет заявку в друзья от одного пользователя к другому.
type FriendRequest struct {
	ID           int       `json:"id"`
	SenderUID    string    `json:"sender_uid"`
	SenderName   string    `json:"sender_name,omitempty"`
	RecipientUID string    `json:"recipient_uid"`
	SentAt       time.Time `json:"sent_at"`
}
