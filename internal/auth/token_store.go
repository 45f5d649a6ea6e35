package auth

import (
	"context"
	"fmt"
	"time"

	"seminar/internal/cache"
)

const revokedTokenKeyPrefix = "seminar:revoked_token:"

// TokenStoreInterface defines the interface for token revocation.
type TokenStoreInterface interface {
	RevokeAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked token IDs in Redis until the token would have
// expired anyway.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// RevokeAccessToken marks a token as logged out.
func (s *TokenStore) RevokeAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return fmt.Errorf("revoke token: empty token id")
	}
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	return s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether the token was logged out. Redis failures are
// treated as not revoked, matching the cache client's fail-safe behaviour.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, revokedTokenKeyPrefix+tokenID)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}
