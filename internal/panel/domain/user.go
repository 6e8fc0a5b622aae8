package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User is a back-office account allowed to use the panel.
type User struct {
	ID           string
	Username     string
	FullName     string
	Role         string
	Active       bool
	PasswordHash string  // argon2id PHC string
	TOTPSecret   *string // base32, nil when the second factor is not enrolled
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) HasTOTP() bool { return u.TOTPSecret != nil && *u.TOTPSecret != "" }
