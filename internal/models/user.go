// Package models содержит доменные модели социальной сети:
// пользователей, посты, комментарии, заявки в друзья и уведомления.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
//
// Поле PasswordHash никогда не сериализуется в ответах.
// VerificationCode и PasswordResetToken хранят только sha256-дайджесты
// одноразовых токенов, сырые значения уходят пользователю по почте.
type User struct {
	ID                   string     `json:"userid"`
	Email                string     `json:"email"`
	Username             string     `json:"username"`
	PasswordHash         string     `json:"-"`
	Role                 string     `json:"role"`
	Active               bool       `json:"active"`
	Name                 string     `json:"name,omitempty"`
	Bio                  string     `json:"bio,omitempty"`
	Gender               string     `json:"gender,omitempty"`
	DOB                  string     `json:"dob,omitempty"`
	MobileNo             string     `json:"mobile_no,omitempty"`
	ProfilePhotoURL      string     `json:"profile_photo_url,omitempty"`
	BackgroundPhotoURL   string     `json:"background_photo_url,omitempty"`
	VerificationCode     *string    `json:"-"`
	PasswordResetToken   *string    `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
	PasswordChangedAt    *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
}
