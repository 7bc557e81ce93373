package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// With no Redis behind it the store fails safe: refresh tokens read as
// missing and nothing reads as blacklisted.
func TestTokenStore_WithoutRedis(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	assert.NoError(t, store.StoreRefreshToken(ctx, "id-1", "alice", time.Minute))

	subject, err := store.GetRefreshToken(ctx, "id-1")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
	assert.Empty(t, subject)

	assert.NoError(t, store.BlacklistAccessToken(ctx, "id-2", time.Minute))
	assert.False(t, store.IsAccessTokenBlacklisted(ctx, "id-2"))

	assert.NoError(t, store.DeleteRefreshToken(ctx, "id-1"))
}
