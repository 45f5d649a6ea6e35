package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_WithoutCache(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(nil)

	assert.Error(t, store.RevokeAccessToken(ctx, "", time.Minute))
	assert.NoError(t, store.RevokeAccessToken(ctx, "abc", 0))
	assert.NoError(t, store.RevokeAccessToken(ctx, "abc", time.Minute))

	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}
