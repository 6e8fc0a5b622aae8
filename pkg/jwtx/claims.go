package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a login token and its session row.
const DefaultSessionTTL = 24 * time.Hour

// Claims carried by panel access tokens. The subject and UserID always hold
// the same user id; UserID is kept for dashboard clients that read it.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID of the row written at login
	SID string `json:"sid,omitempty"`

	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

// Identity is the user data stamped into a token.
type Identity struct {
	UserID   string
	Username string
	Role     string
	FullName string
}

// NewClaims builds claims for id valid from now until now+ttl.
func NewClaims(id Identity, sid, issuer string, audience []string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:      sid,
		UserID:   id.UserID,
		Username: id.Username,
		Role:     id.Role,
		FullName: id.FullName,
	}
}

// NewJTI returns a random URL-safe token id. Two logins in the same second
// must still produce distinct tokens, which the session fingerprint relies on.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" || c.Issuer == expected {
		return nil
	}
	return ErrIssuer
}

// ValidateAudience passes when any expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry checks exp and nbf against now, allowing leeway of clock skew.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

// Subject user id, tolerant of tokens that only set one of the two fields.
func (c *Claims) User() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.UserID
}
