package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is the fixed validity window of a login token.
const AccessTokenTTL = time.Hour

// Claims are the access-token claims. userId and username keep the names
// existing front ends already decode.
type Claims struct {
	jwt.RegisteredClaims

	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// NewAccessClaims builds claims for userID valid from now until now+ttl.
func NewAccessClaims(userID, username, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UserID:   userID,
		Username: username,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer when one is expected.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry rejects tokens past exp or before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.validateExpiryAt(time.Now().UTC(), 0)
}

// ValidateExpiryWithLeeway is ValidateExpiry with a clock skew allowance.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	return c.validateExpiryAt(time.Now().UTC(), leeway)
}

func (c *Claims) validateExpiryAt(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
