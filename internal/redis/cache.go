package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"estate-chat/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - user:{user_id} - profile cache, 5m TTL

const defaultProfileTTL = 5 * time.Minute

// CacheStore is a read-through cache for identity-directory profiles.
// Cache errors degrade to misses; the directory falls back to the database.
type CacheStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewCacheStore(client *goredis.Client, ttl time.Duration) *CacheStore {
	if ttl == 0 {
		ttl = defaultProfileTTL
	}
	return &CacheStore{client: client, ttl: ttl}
}

// GetProfile retrieves a cached profile. A nil result means cache miss.
func (c *CacheStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	key := profileKey(userID)
	data, err := c.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetProfile stores a profile with the configured TTL.
func (c *CacheStore) SetProfile(ctx context.Context, profile domain.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileKey(profile.ID), data, c.ttl).Err()
}

// InvalidateProfile drops a cached profile, for collaborator-driven updates.
func (c *CacheStore) InvalidateProfile(ctx context.Context, userID string) error {
	return c.client.Del(ctx, profileKey(userID)).Err()
}

func profileKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}
