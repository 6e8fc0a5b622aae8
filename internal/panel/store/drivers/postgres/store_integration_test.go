//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/internal/panel/store/drivers/postgres"
	"github.com/aussiebroadwan/panel/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "panel",
				"POSTGRES_PASSWORD": "panel",
				"POSTGRES_DB":       "panel",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(ctx) })

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://panel:panel@%s:%s/panel?sslmode=disable", host, port.Port())
	s, err := postgres.NewStore(ctx, dsn, postgres.Options{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	s := startPostgres(t)

	newClient := func(i int, name string) *domain.Client {
		c, err := domain.NewClient(domain.NewClientProps{
			Name:    name,
			Email:   fmt.Sprintf("client%d@example.com", i),
			Phone:   fmt.Sprintf("6%08d", i),
			Address: "Calle Mayor 1",
			TaxID:   fmt.Sprintf("%08dZ", i),
		})
		require.NoError(t, err)
		return c
	}

	t.Run("clients", func(t *testing.T) {
		repo := s.Clients()
		a := newClient(1, "Alpha 50% Foods")
		b := newClient(2, "Beta Foods")
		require.NoError(t, repo.Save(ctx, a))
		require.NoError(t, repo.Save(ctx, b))
		require.ErrorIs(t, repo.Save(ctx, newClient(1, "Dup")), store.ErrAlreadyExists)

		got, err := repo.FindByID(ctx, a.ID())
		require.NoError(t, err)
		require.Equal(t, a.Snapshot(), got.Snapshot())

		page, err := repo.Find(ctx, store.ClientFilter{Search: "foods"}, store.Pagination{SortBy: "name", SortOrder: "asc"})
		require.NoError(t, err)
		require.Equal(t, 2, page.Total)
		require.Equal(t, "Alpha 50% Foods", page.Data[0].Name())

		page, err = repo.Find(ctx, store.ClientFilter{Search: "%"}, store.Pagination{})
		require.NoError(t, err)
		require.Equal(t, 1, page.Total)

		require.NoError(t, b.Deactivate())
		require.NoError(t, repo.Update(ctx, b))
		require.NoError(t, repo.Delete(ctx, a.ID()))

		n, err := repo.CountByStatus(ctx, domain.StatusDeleted)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("users and sessions in a transaction", func(t *testing.T) {
		u := domain.User{
			ID: idx.New().String(), Username: "admin", FullName: "Admin", Role: domain.RoleAdmin,
			Active: true, PasswordHash: "hash",
		}
		now := time.Now().UTC().Truncate(time.Microsecond)

		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().CreateUser(ctx, u); err != nil {
				return err
			}
			if err := tx.Sessions().CreateSession(ctx, domain.Session{
				ID: idx.New().String(), UserID: u.ID, TokenHash: "h1", ExpiresAt: now.Add(time.Hour), CreatedAt: now,
			}); err != nil {
				return err
			}
			return tx.Users().UpdateLastLogin(ctx, u.ID, now)
		})
		require.NoError(t, err)

		sess, err := s.Sessions().GetActiveSessionByTokenHash(ctx, "h1", now)
		require.NoError(t, err)
		require.Equal(t, u.ID, sess.UserID)

		n, err := s.Sessions().DeleteExpiredSessions(ctx, now.Add(2*time.Hour))
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		empty, err := s.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)
	})
}
