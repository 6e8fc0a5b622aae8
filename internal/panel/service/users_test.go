package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/stretchr/testify/require"
)

func TestCreateUserValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name string
		in   CreateUserInput
	}{
		{"short username", CreateUserInput{Username: "ab", Password: "long enough"}},
		{"bad characters", CreateUserInput{Username: "ana maria", Password: "long enough"}},
		{"short password", CreateUserInput{Username: "anamaria", Password: "short"}},
		{"unknown role", CreateUserInput{Username: "anamaria", Password: "long enough", Role: "root"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.users.Create(ctx, tc.in)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateUserDefaultsAndConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.users.Create(ctx, CreateUserInput{Username: "Ana.Maria", Password: "long enough"})
	require.NoError(t, err)
	require.Equal(t, "ana.maria", u.Username)
	require.Equal(t, "ana.maria", u.FullName)
	require.Equal(t, domain.RoleOperator, u.Role)
	require.True(t, u.Active)
	require.NotContains(t, u.PasswordHash, "long enough")

	_, err = f.users.Create(ctx, CreateUserInput{Username: "ana.maria", Password: "another one"})
	require.ErrorIs(t, err, domain.ErrConflict)

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestSetPasswordEndsSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.mustUser(t, "maria", "correct horse")

	res, err := f.auth.Login(ctx, LoginInput{Username: "maria", Password: "correct horse"})
	require.NoError(t, err)

	require.ErrorIs(t, f.users.SetPassword(ctx, "maria", "short"), domain.ErrValidation)
	require.NoError(t, f.users.SetPassword(ctx, "maria", "new password"))

	_, err = f.auth.Authenticate(ctx, res.Token)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.auth.Login(ctx, LoginInput{Username: "maria", Password: "correct horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, LoginInput{Username: "maria", Password: "new password"})
	require.NoError(t, err)
}

func TestUnknownUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.ErrorIs(t, f.users.SetActive(ctx, "ghost", true), domain.ErrNotFound)
	_, err := f.users.EnrollTOTP(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := &BootstrapService{Store: f.store, Users: f.users, Token: "s3cret-bootstrap"}

	done, err := b.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, done)

	in := CreateUserInput{Username: "admin", FullName: "Admin", Password: "admin password", Role: domain.RoleOperator}

	_, err = b.Bootstrap(ctx, "wrong", in)
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)

	admin, err := b.Bootstrap(ctx, "s3cret-bootstrap", in)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)

	done, err = b.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.True(t, done)

	in.Username = "second"
	_, err = b.Bootstrap(ctx, "s3cret-bootstrap", in)
	require.ErrorIs(t, err, ErrBootstrapAlready)

	_, err = f.auth.Login(ctx, LoginInput{Username: "admin", Password: "admin password"})
	require.NoError(t, err)
}

func TestBootstrapDisabledWithoutToken(t *testing.T) {
	f := newFixture(t)
	b := &BootstrapService{Store: f.store, Users: f.users}

	_, err := b.Bootstrap(context.Background(), "", CreateUserInput{Username: "admin", Password: "admin password"})
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)
}
