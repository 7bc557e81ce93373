package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for every token that fails validation. A bad
// signature, an expired token and a malformed one are deliberately
// indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents the JWT claims carried by issued tokens. The subject is
// the username of the authenticated user.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService issues and validates signed bearer tokens.
type JWTService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService creates a token service for the given signing secret and
// algorithm name. Unknown algorithm names fall back to HS256.
func NewJWTService(secret, algorithm string, accessTTL, refreshTTL time.Duration) *JWTService {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &JWTService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the lifetime of access tokens.
func (s *JWTService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL returns the lifetime of refresh tokens.
func (s *JWTService) RefreshTTL() time.Duration { return s.refreshTTL }

// GenerateAccessToken issues a signed access token for the given subject.
func (s *JWTService) GenerateAccessToken(subject string) (string, error) {
	token, _, err := s.generate(subject, s.accessTTL)
	return token, err
}

// GenerateRefreshToken issues a signed refresh token for the given subject.
// The token ID is returned separately so the caller can record it server side.
func (s *JWTService) GenerateRefreshToken(subject string) (tokenID, token string, err error) {
	token, tokenID, err = s.generate(subject, s.refreshTTL)
	return tokenID, token, err
}

func (s *JWTService) generate(subject string, ttl time.Duration) (token, tokenID string, err error) {
	now := time.Now()
	tokenID = uuid.New().String()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}

// ValidateToken validates a token string and returns its claims. Any failure,
// whether signature, expiry or structure, yields ErrInvalidToken.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
