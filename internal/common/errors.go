// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях сервиса.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отдавать клиенту правильный HTTP-статус.
package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Ошибки предложений (suggestions)
var (
	// ErrSuggestionNotFound — предложение с таким id не существует
	ErrSuggestionNotFound = errors.New("suggestion not found")
	// ErrInvalidStatus — статус не из набора pending/approved/rejected
	ErrInvalidStatus = errors.New("invalid status")
)

// Ошибки локаций, избранного и отзывов
var (
	// ErrLocationNotFound — локация не найдена
	ErrLocationNotFound = errors.New("location not found")
	// ErrFavoriteExists — локация уже в избранном
	ErrFavoriteExists = errors.New("location is already a favorite")
	// ErrFavoriteNotFound — в избранном такой записи нет
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrReviewNotFound — отзыв не найден
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewExists — пользователь уже оставил отзыв на эту локацию
	ErrReviewExists = errors.New("review already exists for this location")
)

// Ошибки пользователей и баллов
var (
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken — username уже занят
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidAmount — некорректная сумма баллов (ноль или отрицательная)
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidInput — общая ошибка валидации, оборачивается с деталями поля
	ErrInvalidInput = errors.New("invalid input")
	// ErrBodyTooLarge — тело запроса больше лимита (обычно слишком большое фото)
	ErrBodyTooLarge = errors.New("request body too large")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("admin rights required")
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("wrong password")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("too many attempts, try again in an hour")
	// ErrSessionExpired — сессия истекла или не существует
	ErrSessionExpired = errors.New("session expired, log in again")
)

// Invalid оборачивает ErrInvalidInput с описанием поля.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// HTTPStatus сопоставляет ошибку с HTTP-статусом.
// Всё, что не распознано, считается ошибкой хранилища (500).
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ErrWrongPassword), errors.Is(err, ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, ErrSuggestionNotFound), errors.Is(err, ErrLocationNotFound),
		errors.Is(err, ErrUserNotFound), errors.Is(err, ErrFavoriteNotFound),
		errors.Is(err, ErrReviewNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrFavoriteExists), errors.Is(err, ErrReviewExists):
		return http.StatusConflict
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
