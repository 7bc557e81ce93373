package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tripplanner/internal/auth"
	"tripplanner/internal/model"
	"tripplanner/internal/repository"
)

var (
	// ErrEmailTaken is returned when the registration email is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken is returned when the registration username is already in use.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned for any login failure. An unknown
	// identifier and a wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid,
	// expired or revoked.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService handles registration, login and token resolution.
type AuthService interface {
	Register(ctx context.Context, email, username, password, fullName string) (*model.User, error)
	Login(ctx context.Context, identifier, password string) (accessToken, refreshToken string, user *model.User, err error)
	CurrentUser(ctx context.Context, subject string) (*model.User, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken, accessToken string) error
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user after checking email and username uniqueness.
// The database's unique indexes remain the arbiter under concurrency: a
// duplicate-key error at insert time maps to the same conflict outcome as the
// pre-checks.
func (s *authService) Register(ctx context.Context, email, username, password, fullName string) (*model.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent registration won the race; report the same
			// conflict the pre-check would have.
			if _, lookupErr := s.users.FindByEmail(ctx, email); lookupErr == nil {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates by username or email and returns a fresh token pair.
func (s *authService) Login(ctx context.Context, identifier, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.Username, s.jwtService.RefreshTTL()); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// CurrentUser resolves a verified token subject to its user record. A subject
// whose user no longer exists yields the same invalid-token outcome as any
// other token failure.
func (s *authService) CurrentUser(ctx context.Context, subject string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, subject)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return user, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", ErrInvalidRefreshToken
	}

	subject, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || subject != claims.Subject {
		return "", ErrInvalidRefreshToken
	}

	if _, err := s.users.FindByUsername(ctx, subject); err != nil {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(subject)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token and blacklists the presented access token
// for the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, refreshToken, accessToken string) error {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return ErrInvalidRefreshToken
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}

	if accessToken != "" {
		if accessClaims, err := s.jwtService.ValidateToken(accessToken); err == nil && accessClaims.ID != "" && accessClaims.ExpiresAt != nil {
			ttl := time.Until(accessClaims.ExpiresAt.Time)
			if ttl > 0 {
				if err := s.tokenStore.BlacklistAccessToken(ctx, accessClaims.ID, ttl); err != nil {
					return fmt.Errorf("blacklist access token: %w", err)
				}
			}
		}
	}

	return nil
}
