package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by Decode for any token that fails
// signature, structure or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Codec signs and verifies JWTs with a symmetric HS256 key. It is
// ttl-agnostic; callers pick the lifetime per token kind.
type Codec struct {
	secret []byte
}

// NewCodec creates a Codec signing with the given secret. Changing the
// secret invalidates every previously issued token.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue creates a signed token with subject sub expiring after ttl.
func (c *Codec) Issue(sub string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		// A unique ID keeps rotated tokens byte-distinct even when
		// issued within the same second.
		ID:        uuid.New().String(),
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies the token's signature and expiry and returns its
// subject and expiry time. Claims are never trusted before the
// signature verifies.
func (c *Codec) Decode(tokenStr string) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", time.Time{}, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return "", time.Time{}, ErrInvalidToken
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}
