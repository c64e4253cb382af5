// Package tokenx reads the claims of the bearer token issued by the API.
//
// The signature is NOT verified: the client does not hold the signing key
// and uses the claims for display and diagnostics only. Whether a token is
// acceptable is always decided by the server.
package tokenx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformed = errors.New("malformed token")

// Claims is the subset of the token payload the client cares about.
type Claims struct {
	Username  string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry at or before now.
// Tokens without an exp claim never expire from the client's point of view.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type apiClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Inspect parses token, with or without its "Bearer " prefix.
func Inspect(token string) (*Claims, error) {
	raw := strings.TrimSpace(token)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return nil, ErrMalformed
	}

	var c apiClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	out := &Claims{Username: c.Username, Role: c.Role}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}
