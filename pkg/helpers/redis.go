package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client. It returns nil when addr is empty so that
// callers (rate limiting, health checks) can treat redis as optional.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(ctx context.Context, rdb *redis.Client) error {
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return rdb.Ping(c).Err()
}
