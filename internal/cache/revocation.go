package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:"

// TokenBlacklist records revoked token ids until they would have expired anyway.
type TokenBlacklist struct {
	rdb *redis.Client
	now func() time.Time
}

// NewTokenBlacklist creates a blacklist on rdb. A nil client makes every call a no-op.
func NewTokenBlacklist(rdb *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb, now: time.Now}
}

// Revoke blacklists jti until expiresAt.
func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if b.rdb == nil || jti == "" {
		return nil
	}
	ttl := expiresAt.Sub(b.now())
	if ttl <= 0 {
		return nil
	}
	return b.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether jti has been revoked.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if b.rdb == nil || jti == "" {
		return false, nil
	}
	n, err := b.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
