package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionTTL = 24 * 7 * time.Hour
	CookieName = "token"
)

var (
	ErrMissingSecret  = errors.New("jwt signing secret not configured")
	ErrInvalidToken   = errors.New("invalid session token")
	ErrSessionRevoked = errors.New("session revoked")
)

// Claims are embedded in every session token.
type Claims struct {
	Nombre string `json:"nombre"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad subject [%s]", ErrInvalidToken, c.Subject)
	}
	return id, nil
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	// injectable clock, for tests
	Now func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		Now:    time.Now,
	}
}

func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}

func (ti *TokenIssuer) Issue(userID int, nombre string) (string, time.Time, error) {
	if len(ti.secret) == 0 {
		return "", time.Time{}, ErrMissingSecret
	}

	now := ti.Now()
	expiresAt := now.Add(ti.ttl)
	claims := Claims{
		Nombre: nombre,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func (ti *TokenIssuer) Verify(token string) (*Claims, error) {
	if len(ti.secret) == 0 {
		return nil, ErrMissingSecret
	}
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) {
			return ti.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ti.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if _, err := claims.UserID(); err != nil {
		return nil, err
	}

	return claims, nil
}
