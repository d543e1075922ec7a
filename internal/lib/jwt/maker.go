// Package jwt реализует генерацию и парсинг сессионных JWT токенов.
//
// Maker определяет интерфейс для создания и проверки токенов,
// привязывающих сессию к идентификатору пользователя.
// MakerImpl — конкретная реализация с секретным ключом и сроком жизни.
package jwt

import (
	"errors"
	"time"
)

// Ошибки проверки токена. Истекший токен отличается от искаженного:
// middleware сообщает о них одинаково (401), но по разным причинам.
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Maker описывает интерфейс для генерации и парсинга сессионных токенов.
type Maker interface {
	// GenerateToken создает подписанный токен для пользователя с данным uid.
	GenerateToken(userUID string) (string, error)
	// ParseToken возвращает *CustomClaims, либо ErrTokenExpired/ErrTokenInvalid.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
