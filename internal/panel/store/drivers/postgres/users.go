package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/jackc/pgx/v5"
)

type usersRepo struct {
	db DBTX
}

const selectUsers = `SELECT ` + store.UserColumns + ` FROM users`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := store.ScanUser(r.db.QueryRow(ctx, selectUsers+` WHERE id = $1`, id))
	return u, mapNotFound(err)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := store.ScanUser(r.db.QueryRow(ctx, selectUsers+` WHERE username = $1`, username))
	return u, mapNotFound(err)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (`+store.UserColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Username, u.FullName, u.Role, u.Active, u.PasswordHash, u.TOTPSecret, u.LastLogin, u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, selectUsers+` ORDER BY username`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		return store.ScanUser(row)
	})
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool) error {
	return requireRow(r.db.Exec(ctx,
		`UPDATE users SET active = $1, updated_at = now() WHERE id = $2`, active, userID))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	return requireRow(r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, userID))
}

func (r *usersRepo) SetTOTPSecret(ctx context.Context, userID string, secret *string) error {
	return requireRow(r.db.Exec(ctx,
		`UPDATE users SET totp_secret = $1, updated_at = now() WHERE id = $2`, secret, userID))
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return requireRow(r.db.Exec(ctx,
		`UPDATE users SET last_login = $1 WHERE id = $2`, at, userID))
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var empty bool
	err := r.db.QueryRow(ctx, `SELECT NOT EXISTS (SELECT 1 FROM users)`).Scan(&empty)
	return empty, err
}
