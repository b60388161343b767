package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dustward/campbase/pkg/cache"
)

// TokenBlacklist revokes camp session tokens before their JWT expiry.
// Logout writes the token here; the JWT middleware consults it on every
// authenticated request, so a logged-out token stops working immediately
// even though the signature stays valid.
type TokenBlacklist struct {
	cache *cache.Client
}

// NewTokenBlacklist creates a blacklist backed by the shared redis client.
func NewTokenBlacklist(cache *cache.Client) *TokenBlacklist {
	return &TokenBlacklist{
		cache: cache,
	}
}

// Add revokes a token until its natural expiry. Entries self-expire, so
// the set never grows beyond tokens that could still authenticate.
func (b *TokenBlacklist) Add(ctx context.Context, token string, expiration time.Duration) error {
	return b.cache.Set(ctx, b.key(token), "revoked", expiration)
}

// IsBlacklisted reports whether a token has been revoked.
func (b *TokenBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	return b.cache.Exists(ctx, b.key(token))
}

// key derives the redis key from a SHA-256 of the token, so raw session
// tokens never land in redis.
func (b *TokenBlacklist) key(token string) string {
	hash := sha256.Sum256([]byte(token))
	return fmt.Sprintf("jwt:blacklist:%s", hex.EncodeToString(hash[:]))
}
