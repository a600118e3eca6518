package redis

import (
	"context"
	"fmt"
	"time"

	"estate-chat/config"

	goredis "github.com/redis/go-redis/v9"
)

func NewClient(cfg *config.Config) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// Ping verifies the connection is usable at startup.
func Ping(client *goredis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}
