// Package onetime генерирует одноразовые токены для подтверждения почты
// и сброса пароля. В базе хранится только sha256-дайджест токена,
// сырое значение уходит пользователю в письме и нигде не сохраняется.
package onetime

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// tokenBytes размер сырого токена в байтах до hex-кодирования.
const tokenBytes = 32

// ResetTokenTTL время жизни токена сброса пароля.
// Токены подтверждения почты не истекают.
const ResetTokenTTL = 10 * time.Minute

// New возвращает сырой токен и его дайджест для хранения.
func New() (raw, digest string, err error) {
	const op = "onetime.New"
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	raw = hex.EncodeToString(buf)
	return raw, Digest(raw), nil
}

// Digest возвращает sha256-дайджест сырого токена в hex.
// Соль не нужна: вход уже высокоэнтропийный и одноразовый.
func Digest(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
