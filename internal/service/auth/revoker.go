package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked_token:"

// Revoker tracks access tokens invalidated before their expiry.
type Revoker interface {
	// Revoke marks the token id as revoked until the given time.
	Revoke(ctx context.Context, tokenID string, until time.Time) error

	// IsRevoked reports whether the token id was revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisRevoker stores revoked token ids in Redis with a TTL matching the
// token's remaining lifetime, so entries vanish once the token would have
// expired anyway.
type RedisRevoker struct {
	client *redis.Client
	now    func() time.Time
}

var _ Revoker = (*RedisRevoker)(nil)

// NewRedisRevoker creates a revoker backed by client.
func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	if client == nil {
		// ALLOW-PANIC: constructor invariant
		panic("redis client cannot be nil")
	}
	return &RedisRevoker{client: client, now: time.Now}
}

// Revoke implements Revoker. Tokens already past until need no entry.
func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if tokenID == "" {
		return ErrInvalidToken
	}
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked implements Revoker.
func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, revokedKeyPrefix+tokenID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
}

// NoopRevoker never revokes. It is used when Redis is not configured.
type NoopRevoker struct{}

var _ Revoker = NoopRevoker{}

// Revoke implements Revoker.
func (NoopRevoker) Revoke(context.Context, string, time.Time) error { return nil }

// IsRevoked implements Revoker.
func (NoopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
