package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so a Tx exposes the same set.
type Store interface {
	Clients() Clients
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST call Commit or
	// Rollback on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// Save inserts a new client. Duplicate email or tax id yields ErrAlreadyExists.
	Save(ctx context.Context, c *domain.Client) error

	FindByID(ctx context.Context, id domain.ClientID) (*domain.Client, error)
	FindByEmail(ctx context.Context, email domain.Email) (*domain.Client, error)

	// FindByTaxID upper-cases the input before looking it up.
	FindByTaxID(ctx context.Context, taxID string) (*domain.Client, error)

	Find(ctx context.Context, f ClientFilter, p Pagination) (Page[*domain.Client], error)

	// Update overwrites every mutable column of an existing client.
	Update(ctx context.Context, c *domain.Client) error

	// Delete marks the client deleted. The row is kept.
	Delete(ctx context.Context, id domain.ClientID) error

	FindActive(ctx context.Context) ([]*domain.Client, error)
	FindByStatus(ctx context.Context, status domain.ClientStatus) ([]*domain.Client, error)

	// Search matches term against name, email and tax id.
	Search(ctx context.Context, term string) ([]*domain.Client, error)

	CountByStatus(ctx context.Context, status domain.ClientStatus) (int, error)
	ExistsByEmail(ctx context.Context, email domain.Email) (bool, error)
	ExistsByTaxID(ctx context.Context, taxID string) (bool, error)
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a user. A taken username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	ListUsers(ctx context.Context) ([]domain.User, error)
	SetActive(ctx context.Context, userID string, active bool) error
	UpdatePasswordHash(ctx context.Context, userID, hash string) error

	// SetTOTPSecret enrolls (or with nil, removes) the second factor.
	SetTOTPSecret(ctx context.Context, userID string, secret *string) error

	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetActiveSessionByTokenHash returns a non-expired session.
	GetActiveSessionByTokenHash(ctx context.Context, tokenHash string, now time.Time) (domain.Session, error)

	HasActiveSession(ctx context.Context, userID string, now time.Time) (bool, error)
	DeleteUserSessions(ctx context.Context, userID string) (int64, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
