// Package auth validates logins against the fixed credential table and
// issues signed session tokens. There is no user store; the table comes
// from configuration.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims are the session token claims.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Service struct {
	creds      map[string]string
	signingKey []byte
	ttl        time.Duration
}

func NewService(creds map[string]string, signingKey string, ttl time.Duration) *Service {
	return &Service{
		creds:      creds,
		signingKey: []byte(signingKey),
		ttl:        ttl,
	}
}

// Login checks the credential pair and returns a signed session token.
func (s *Service) Login(username, password string) (string, error) {
	want, ok := s.creds[username]
	if !ok {
		// Still compare to keep timing uniform for unknown users.
		subtle.ConstantTimeCompare([]byte(password), []byte(password))
		return "", ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(want), []byte(password)) != 1 {
		return "", ErrInvalidCredentials
	}

	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a session token, returning its claims.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
