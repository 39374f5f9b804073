// Package common — context.go хранит данные запроса в context.Context.
package common

import "context"

type ctxKey int

const (
	adminIDKey ctxKey = iota
	requestIDKey
)

// WithAdminID кладёт id авторизованного админа в контекст.
func WithAdminID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, adminIDKey, id)
}

// AdminIDFromContext возвращает id админа, если запрос прошёл авторизацию.
func AdminIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey).(int64)
	return id, ok
}

// WithRequestID кладёт id запроса в контекст.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext возвращает id запроса или пустую строку.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
