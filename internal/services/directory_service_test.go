package services

import (
	"context"
	"testing"

	"estate-chat/internal/domain"
	"estate-chat/internal/repository"
	chat_errors "estate-chat/pkg/errors"

	"github.com/stretchr/testify/require"
)

func TestDirectoryService_ResolvesProfiles(t *testing.T) {
	req := require.New(t)
	users := repository.NewMemoryUserRepository()
	avatar := "https://cdn.example.com/bob.png"
	users.Put(domain.User{ID: "bob", Username: "bob", Avatar: &avatar})

	// Cache-less resolution falls straight through to the user store.
	svc := NewDirectoryService(users, nil, nil)

	profile, err := svc.Resolve(context.Background(), "bob")
	req.NoError(err)
	req.Equal("bob", profile.ID)
	req.Equal("bob", profile.Username)
	req.NotNil(profile.Avatar)
	req.Equal(avatar, *profile.Avatar)

	_, err = svc.Resolve(context.Background(), "nobody")
	req.ErrorIs(err, chat_errors.ErrNotFound)
}
