package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/pkg/idx"
	"github.com/stretchr/testify/require"
)

func mustUser(t *testing.T, s store.Store, username string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		FullName:     "Test " + username,
		Role:         domain.RoleAdmin,
		Active:       true,
		PasswordHash: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	users := s.Users()

	empty, err := users.IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	u := mustUser(t, s, "admin")
	require.ErrorIs(t, users.CreateUser(ctx, u), store.ErrAlreadyExists)

	got, err := users.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.True(t, got.Active)
	require.Nil(t, got.TOTPSecret)
	require.Nil(t, got.LastLogin)

	require.NoError(t, users.SetActive(ctx, u.ID, false))
	secret := "JBSWY3DPEHPK3PXP"
	require.NoError(t, users.SetTOTPSecret(ctx, u.ID, &secret))
	require.NoError(t, users.UpdatePasswordHash(ctx, u.ID, "new-hash"))
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, users.UpdateLastLogin(ctx, u.ID, at))

	got, err = users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
	require.True(t, got.HasTOTP())
	require.Equal(t, "new-hash", got.PasswordHash)
	require.NotNil(t, got.LastLogin)
	require.True(t, at.Equal(*got.LastLogin))

	list, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = users.GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, users.SetActive(ctx, "missing", true), store.ErrNotFound)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	sessions := s.Sessions()
	u := mustUser(t, s, "admin")
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	live := domain.Session{
		ID: idx.New().String(), UserID: u.ID, TokenHash: "live-hash",
		IP: "127.0.0.1", UserAgent: "test", ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}
	expired := live
	expired.ID = idx.New().String()
	expired.TokenHash = "expired-hash"
	expired.ExpiresAt = now.Add(-time.Second)

	require.NoError(t, sessions.CreateSession(ctx, live))
	require.NoError(t, sessions.CreateSession(ctx, expired))

	got, err := sessions.GetActiveSessionByTokenHash(ctx, "live-hash", now)
	require.NoError(t, err)
	require.Equal(t, live.ID, got.ID)
	require.True(t, live.ExpiresAt.Equal(got.ExpiresAt))

	_, err = sessions.GetActiveSessionByTokenHash(ctx, "expired-hash", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	ok, err := sessions.HasActiveSession(ctx, u.ID, now)
	require.NoError(t, err)
	require.True(t, ok)

	n, err := sessions.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = sessions.DeleteUserSessions(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	ok, err = sessions.HasActiveSession(ctx, u.ID, now)
	require.NoError(t, err)
	require.False(t, ok)
}
