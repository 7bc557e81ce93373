package auth

import (
	"context"
	"errors"
	"time"

	"tripplanner/internal/cache"
)

const (
	refreshTokenKeyPrefix = "refresh_token:"
	accessTokenKeyPrefix  = "blacklist:access_token:"
)

// ErrRefreshTokenNotFound is returned when a refresh token ID is unknown,
// expired or has been revoked.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// TokenStoreInterface defines the server-side token state operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID, subject string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (subject string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
	BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) bool
}

// TokenStore keeps refresh tokens and the access-token blacklist in Redis.
// Tokens themselves stay self-contained; only their IDs are recorded here.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store backed by the given cache.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken records a refresh token ID with its subject until the
// token itself expires.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID, subject string, ttl time.Duration) error {
	return s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, []byte(subject), ttl)
}

// GetRefreshToken returns the subject a refresh token ID was issued for.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, error) {
	data, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil || data == nil {
		return "", ErrRefreshTokenNotFound
	}
	return string(data), nil
}

// DeleteRefreshToken revokes a refresh token ID.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}

// BlacklistAccessToken marks an access token ID as revoked until it expires.
func (s *TokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.cache.Set(ctx, accessTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsAccessTokenBlacklisted reports whether an access token ID was revoked.
// If Redis is unreachable the token is treated as not blacklisted.
func (s *TokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) bool {
	data, err := s.cache.Get(ctx, accessTokenKeyPrefix+tokenID)
	return err == nil && data != nil
}
