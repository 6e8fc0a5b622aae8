package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/pkg/slogx"
)

// BootstrapService creates the first admin account on an empty install.
// It is guarded by a token configured out of band.
type BootstrapService struct {
	Store store.Store
	Users *UserService
	Token string
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

func (s *BootstrapService) Bootstrap(ctx context.Context, token string, in CreateUserInput) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if s.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	in.Role = domain.RoleAdmin
	admin, err := s.Users.newUser(in)
	if err != nil {
		return domain.User{}, err
	}

	// The emptiness check and the insert share a transaction so two
	// concurrent calls cannot both create an admin.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}
		return s.Users.insert(ctx, tx.Users(), admin)
	})
	if err != nil {
		if errors.Is(err, ErrBootstrapAlready) {
			l.Warn("attempted bootstrap on already-bootstrapped system")
		}
		return domain.User{}, err
	}

	l.Info("system bootstrapped", slog.String("admin_id", admin.ID), slog.String("username", admin.Username))
	return admin, nil
}
