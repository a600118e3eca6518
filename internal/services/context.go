package services

import (
	"context"

	"estate-chat/pkg/logger"
)

// WithUserContext stores the authenticated user id on the request context.
// The logger key is reused so request logs automatically carry the user id.
func WithUserContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, logger.UserIdKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(logger.UserIdKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
