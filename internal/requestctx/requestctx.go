// Package requestctx carries per-request values between middleware and
// handlers.
package requestctx

import (
	"context"

	"hrportal/internal/domain/auth"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	userKey      ctxKey = "user"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

func WithUser(ctx context.Context, user auth.UserContext) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	user, ok := ctx.Value(userKey).(auth.UserContext)
	return user, ok
}
