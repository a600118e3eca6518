package services

import (
	"context"

	"estate-chat/internal/domain"
	chat_errors "estate-chat/pkg/errors"
)

// stubDirectory resolves every id to a fixed-shape profile, minus the ids
// marked missing.
type stubDirectory struct {
	missing map[string]bool
}

func (d *stubDirectory) Resolve(ctx context.Context, userID string) (domain.Profile, error) {
	if d.missing[userID] {
		return domain.Profile{}, chat_errors.ErrNotFound
	}
	return domain.Profile{ID: userID, Username: "user-" + userID}, nil
}
