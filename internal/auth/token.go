package auth

import (
	"errors"
	"fmt"
	"time"

	"taskboard/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// NewTokenService returns a service signing with key. A zero ttl issues tokens
// without an exp claim.
func NewTokenService(key string, ttl time.Duration) (*TokenService, error) {
	if key == "" {
		return nil, errors.New("signing key must not be empty")
	}
	return &TokenService{
		signingKey: []byte(key),
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

// Expires reports whether issued tokens carry an expiry.
func (s *TokenService) Expires() bool {
	return s.ttl > 0
}

func (s *TokenService) Issue(identity models.Identity) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  identity.Username,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and time claims of raw. Any failure is
// reported as models.ErrForbidden.
func (s *TokenService) Verify(raw string) (models.Identity, error) {
	if raw == "" {
		return models.Identity{}, models.ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, fmt.Errorf("%w: %v", models.ErrForbidden, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || claims.Username == "" {
		return models.Identity{}, fmt.Errorf("%w: missing username claim", models.ErrForbidden)
	}
	return models.Identity{Username: claims.Username}, nil
}
