package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenLifetime is how long an issued session token stays valid.
const DefaultTokenLifetime = 24 * time.Hour

// Claims carries the standard registered claims plus the account identity.
// Subject holds the account id as well; UserID is kept for readability on
// the server side.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
}

// Identity is what a verified token tells the caller about its bearer.
type Identity struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secretKey []byte
	lifetime  time.Duration
	now       func() time.Time
}

func NewTokenService(secretKey []byte, lifetime time.Duration) (*TokenService, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("token signing key is empty")
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &TokenService{secretKey: secretKey, lifetime: lifetime, now: time.Now}, nil
}

// Issue signs a token for the given account.
func (s *TokenService) Issue(userID, email string) (string, error) {
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature, algorithm and expiry. It returns
// common.ErrTokenExpired for an expired token and common.ErrInvalidToken for
// every other failure.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" || claims.Subject != claims.UserID {
		return nil, common.ErrInvalidToken
	}

	return &Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Lifetime returns the configured token lifetime.
func (s *TokenService) Lifetime() time.Duration {
	return s.lifetime
}
