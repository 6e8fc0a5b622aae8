package domain

import "time"

// Session is the server side record of an issued token. Only the token
// fingerprint is stored.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	IP        string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }
