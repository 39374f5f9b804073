// Package common — http.go содержит хелперы для JSON-ответов и разбора запросов.
// Все обработчики отвечают через WriteJSON/WriteError, чтобы формат ошибок
// был одинаковым: {"message": "..."}.
package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Лимиты размера тела запроса.
// Фото в предложениях и отзывах приходят data URL (base64) прямо в JSON.
const (
	maxBodyBytes      = 1 << 20
	MaxPhotoBodyBytes = 10 << 20
)

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Message string `json:"message"`
}

// WriteJSON сериализует v и отправляет с указанным статусом.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Ошибка записи JSON-ответа")
	}
}

// WriteError отдаёт ошибку клиенту. Статус определяется по типу ошибки,
// внутренние ошибки логируются, а клиенту уходит общий текст.
func WriteError(w http.ResponseWriter, err error, fallback string) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error(fallback)
		WriteJSON(w, status, ErrorResponse{Message: fallback})
		return
	}
	WriteJSON(w, status, ErrorResponse{Message: err.Error()})
}

// WriteMessage отдаёт произвольное сообщение с указанным статусом.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// DecodeJSON читает тело запроса в dst. Неизвестные поля запрещены,
// чтобы клиент не мог, например, передать status при создании предложения.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return DecodeJSONLimit(r, dst, maxBodyBytes)
}

// DecodeJSONLimit — DecodeJSON с явным лимитом тела.
// Превышение лимита — ErrBodyTooLarge (413), а не «malformed JSON».
func DecodeJSONLimit(r *http.Request, dst interface{}, limit int64) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fmt.Errorf("%w (limit %d bytes)", ErrBodyTooLarge, tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return Invalid("empty request body")
		}
		return Invalid("malformed JSON: %v", err)
	}
	return nil
}

// ParseID разбирает числовой идентификатор из пути.
func ParseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Invalid("%s must be a positive integer", name)
	}
	return id, nil
}

// ParseFloat разбирает необязательный числовой параметр запроса.
func ParseFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, Invalid("%s must be a number", name)
	}
	return v, nil
}

// ParseLimit разбирает параметр limit с дефолтом и верхней границей.
func ParseLimit(raw string, def, maxLimit int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, Invalid("limit must be a positive integer")
	}
	if v > maxLimit {
		v = maxLimit
	}
	return v, nil
}
