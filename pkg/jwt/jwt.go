package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptyToken     = errors.New("jwt: empty token")
	ErrMalformedToken = errors.New("jwt: malformed token")
)

// Claims is the subset of registered claims the client displays.
type Claims struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasExpiry reports whether the token carries an exp claim.
func (c Claims) HasExpiry() bool {
	return !c.ExpiresAt.IsZero()
}

// Expired reports whether the token is past its exp claim at now. Tokens
// without exp never expire.
func (c Claims) Expired(now time.Time) bool {
	return c.HasExpiry() && !now.Before(c.ExpiresAt)
}

// Inspect decodes the registered claims of raw WITHOUT verifying the
// signature. The signing key belongs to the auth service; the result is for
// display and for skipping calls that would certainly be rejected, never for
// trust decisions.
func Inspect(raw string) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Claims{}, ErrEmptyToken
	}

	var rc jwtlib.RegisteredClaims
	if _, _, err := jwtlib.NewParser().ParseUnverified(raw, &rc); err != nil {
		return Claims{}, errors.Join(ErrMalformedToken, err)
	}

	c := Claims{Subject: rc.Subject, Issuer: rc.Issuer}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}
