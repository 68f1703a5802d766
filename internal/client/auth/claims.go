package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the backend's access-token payload. The client only reads
// it to show who is logged in and to skip doomed calls when the token is
// already expired; signature verification stays on the server.
type AccessClaims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}

// ParseAccessClaims decodes the claims of a serialized access token without
// verifying its signature.
func ParseAccessClaims(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Expired reports whether the token's expiry is at or before now. Tokens
// without an exp claim never count as expired.
func (c *AccessClaims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !c.ExpiresAt.After(now)
}

// tokenExpired reports whether token is a parseable JWT that has expired.
// Opaque or malformed tokens are treated as live and left for the backend
// to judge.
func tokenExpired(token string, now time.Time) bool {
	claims, err := ParseAccessClaims(token)
	if err != nil {
		return false
	}
	return claims.Expired(now)
}
