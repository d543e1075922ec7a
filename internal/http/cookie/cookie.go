// Package cookie управляет сессионной cookie с JWT.
// Токен уходит клиенту двумя путями одновременно: HttpOnly cookie для
// браузеров и тело JSON-ответа для bearer-клиентов.
package cookie

import (
	"net/http"
	"time"
)

// SessionCookieName имя сессионной cookie.
const SessionCookieName = "jwt"

// loggedOutValue инертное значение cookie после выхода.
const loggedOutValue = "loggedout"

// SetSession выставляет сессионную cookie с токеном.
// Secure включается только в производственном окружении.
func SetSession(w http.ResponseWriter, token string, ttlDays int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(ttlDays) * 24 * time.Hour),
		HttpOnly: true,
		Secure:   secure,
		Path:     "/",
	})
}

// ClearSession заменяет cookie инертным значением с почти немедленным
// истечением. Серверная инвалидация не выполняется: bearer-токен
// остается валиден до естественного истечения.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    loggedOutValue,
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Path:     "/",
	})
}

// ReadSession возвращает токен из сессионной cookie, либо пустую строку.
func ReadSession(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == loggedOutValue {
		return ""
	}
	return c.Value
}
