package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var sessionRedis *redis.Client

const revokedKeyPrefix = "revoked:"

// InitSessionStore connects the redis-backed session revocation list. Without
// it, logout falls back to client-side token discard.
func InitSessionStore(addr string) error {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	sessionRedis = client
	return nil
}

// CloseSessionStore closes the redis connection if one was established.
func CloseSessionStore() error {
	if sessionRedis != nil {
		return sessionRedis.Close()
	}
	return nil
}

// RevokeToken puts a token on the denylist until it would have expired anyway.
func RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	if sessionRedis == nil {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return sessionRedis.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err()
}

// IsRevoked reports whether a token has been logged out.
func IsRevoked(ctx context.Context, token string) bool {
	if sessionRedis == nil {
		return false
	}
	n, err := sessionRedis.Exists(ctx, revokedKeyPrefix+token).Result()
	return err == nil && n > 0
}
