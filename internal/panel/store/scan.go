package store

import (
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
)

// ClientColumns is the column order expected by ScanClient.
const ClientColumns = "id, name, email, phone, address, tax_id, status, created_at, updated_at"

// UserColumns is the column order expected by ScanUser.
const UserColumns = "id, username, full_name, role, active, password_hash, totp_secret, last_login, created_at, updated_at"

// SessionColumns is the column order expected by ScanSession.
const SessionColumns = "id, user_id, token_hash, ip_address, user_agent, expires_at, created_at"

// RowScanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

func ScanClient(row RowScanner) (*domain.Client, error) {
	var (
		s      domain.ClientSnapshot
		status string
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.TaxID, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Status = domain.ClientStatus(status)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return domain.RestoreClient(s), nil
}

func ScanUser(row RowScanner) (domain.User, error) {
	var (
		u         domain.User
		totp      *string
		lastLogin *time.Time
	)
	if err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.Role, &u.Active, &u.PasswordHash, &totp, &lastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, err
	}
	u.TOTPSecret = totp
	if lastLogin != nil {
		t := lastLogin.UTC()
		u.LastLogin = &t
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func ScanSession(row RowScanner) (domain.Session, error) {
	var s domain.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.TokenHash, &s.IP, &s.UserAgent, &s.ExpiresAt, &s.CreatedAt); err != nil {
		return domain.Session{}, err
	}
	s.ExpiresAt = s.ExpiresAt.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}
