// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Успешные ответы несут
// msg: "OK", ошибки — текст и совпадающий с HTTP-кодом статус.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// StatusOK — значение msg для успешного ответа.
const StatusOK = "OK"

// Response описывает стандартную структуру успешного JSON‑ответа сервера.
type Response struct {
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// ErrorResponse структура ошибки: безопасное для пользователя сообщение
// и статус, совпадающий с HTTP-кодом ответа.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// TokenResponse ответ потоков аутентификации: сессионный токен,
// признак активности учетной записи и идентификатор пользователя.
type TokenResponse struct {
	Msg    string `json:"msg"`
	Token  string `json:"token"`
	Active bool   `json:"active"`
	UserID string `json:"userid"`
}

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{Msg: StatusOK}
}

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Msg:  StatusOK,
		Data: data,
	}
}

// Error возвращает ErrorResponse с переданным сообщением и статусом.
func Error(status int, msg string) ErrorResponse {
	return ErrorResponse{
		Message: msg,
		Status:  status,
	}
}

// Token возвращает TokenResponse для ответов login/signup/reset/verify.
func Token(token string, active bool, userID string) TokenResponse {
	return TokenResponse{
		Msg:    StatusOK,
		Token:  token,
		Active: active,
		UserID: userID,
	}
}

// ValidationError формирует ErrorResponse со статусом 400 на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "eqfield":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s should be same as %s", err.Field(), err.Param()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{
		Message: strings.Join(errsMsgs, ", "),
		Status:  400,
	}
}
