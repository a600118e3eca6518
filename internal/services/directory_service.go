package services

import (
	"context"

	"estate-chat/internal/domain"
	"estate-chat/internal/redis"
	"estate-chat/internal/repository"
	"estate-chat/pkg/logger"
)

// Directory resolves a user id to a display profile. The user store is owned
// by a collaborator; the core only reads it for enrichment.
type Directory interface {
	Resolve(ctx context.Context, userID string) (domain.Profile, error)
}

// DirectoryService reads profiles through the Redis cache with a database
// fallback. Cache failures degrade to plain reads; they never fail a request.
type DirectoryService struct {
	users repository.UserRepository
	cache *redis.CacheStore
	log   *logger.Logger
}

func NewDirectoryService(users repository.UserRepository, cache *redis.CacheStore, log *logger.Logger) *DirectoryService {
	return &DirectoryService{users: users, cache: cache, log: log}
}

func (s *DirectoryService) Resolve(ctx context.Context, userID string) (domain.Profile, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProfile(ctx, userID)
		if err != nil {
			if s.log != nil {
				s.log.Debugf("profile cache read failed for %s: %s", userID, err)
			}
		} else if cached != nil {
			return *cached, nil
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	profile := user.Profile()
	if s.cache != nil {
		if err := s.cache.SetProfile(ctx, profile); err != nil && s.log != nil {
			s.log.Debugf("profile cache write failed for %s: %s", userID, err)
		}
	}
	return profile, nil
}
