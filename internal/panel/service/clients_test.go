package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/stretchr/testify/require"
)

// hookedClients runs callbacks before delegating, to observe or interleave
// with the domain service's reads.
type hookedClients struct {
	store.Clients
	beforeFindByID      func() error
	beforeCountByStatus func()
}

func (h *hookedClients) FindByID(ctx context.Context, id domain.ClientID) (*domain.Client, error) {
	if h.beforeFindByID != nil {
		if err := h.beforeFindByID(); err != nil {
			return nil, err
		}
	}
	return h.Clients.FindByID(ctx, id)
}

func (h *hookedClients) CountByStatus(ctx context.Context, status domain.ClientStatus) (int, error) {
	if h.beforeCountByStatus != nil {
		h.beforeCountByStatus()
	}
	return h.Clients.CountByStatus(ctx, status)
}

func TestClientCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), 0)

	c, err := svc.Create(ctx, clientInput(1))
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, c.Status())
	require.Equal(t, "+34600000001", c.Phone().String())
	require.True(t, c.CanCreateInvoice())

	got, err := svc.Get(ctx, c.ID().String())
	require.NoError(t, err)
	require.Equal(t, c.Snapshot(), got.Snapshot())
}

func TestClientCreateConflicts(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), 0)

	_, err := svc.Create(ctx, clientInput(1))
	require.NoError(t, err)

	dupEmail := clientInput(2)
	dupEmail.Email = "  CLIENTE1@example.com "
	_, err = svc.Create(ctx, dupEmail)
	require.ErrorIs(t, err, domain.ErrConflict)
	require.EqualError(t, err, "Client with email cliente1@example.com already exists")

	dupTax := clientInput(3)
	dupTax.TaxID = "00000001z"
	_, err = svc.Create(ctx, dupTax)
	require.ErrorIs(t, err, domain.ErrConflict)
	require.EqualError(t, err, "Client with Tax ID 00000001Z already exists")
}

func TestClientCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), 0)

	in := clientInput(1)
	in.Email = "not-an-email"
	_, err := svc.Create(ctx, in)
	require.ErrorIs(t, err, domain.ErrValidation)

	in = clientInput(1)
	in.Name = "A"
	_, err = svc.Create(ctx, in)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestClientGetErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), 0)

	_, err := svc.Get(ctx, "nope")
	require.ErrorIs(t, err, domain.ErrValidation)

	id := domain.NewClientID().String()
	_, err = svc.Get(ctx, id)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.EqualError(t, err, "Client with ID "+id+" not found")
}

func TestClientUpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), 0)

	c, err := svc.Create(ctx, clientInput(1))
	require.NoError(t, err)
	other, err := svc.Create(ctx, clientInput(2))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, c.ID().String(), UpdateClientInput{Address: ptr("Gran Via 22, Madrid")})
	require.NoError(t, err)
	require.Equal(t, "Gran Via 22, Madrid", updated.Address())
	require.Equal(t, c.Email(), updated.Email())
	require.Equal(t, c.Name(), updated.Name())
	require.True(t, updated.UpdatedAt().After(c.CreatedAt()))

	// Same email as before is not a conflict with itself.
	_, err = svc.Update(ctx, c.ID().String(), UpdateClientInput{Email: ptr(c.Email().String())})
	require.NoError(t, err)

	_, err = svc.Update(ctx, c.ID().String(), UpdateClientInput{Email: ptr(other.Email().String())})
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.Update(ctx, c.ID().String(), UpdateClientInput{TaxID: ptr(other.TaxID())})
	require.ErrorIs(t, err, domain.ErrConflict)

	updated, err = svc.Update(ctx, c.ID().String(), UpdateClientInput{TaxID: ptr("b12345678")})
	require.NoError(t, err)
	require.Equal(t, "B12345678", updated.TaxID())
}

func TestClientDeleteIsSoftAndIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), 0)

	c, err := svc.Create(ctx, clientInput(1))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID().String()))
	require.NoError(t, svc.Delete(ctx, c.ID().String()))

	got, err := svc.Get(ctx, c.ID().String())
	require.NoError(t, err)
	require.Equal(t, domain.StatusDeleted, got.Status())

	_, err = svc.ChangeStatus(ctx, c.ID().String(), "active")
	require.ErrorIs(t, err, domain.ErrDomain)

	err = svc.Delete(ctx, domain.NewClientID().String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientChangeStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), 0)

	c, err := svc.Create(ctx, clientInput(1))
	require.NoError(t, err)

	got, err := svc.ChangeStatus(ctx, c.ID().String(), "INACTIVE")
	require.NoError(t, err)
	require.Equal(t, domain.StatusInactive, got.Status())
	require.False(t, got.CanCreateInvoice())

	_, err = svc.ChangeStatus(ctx, c.ID().String(), "archived")
	require.ErrorIs(t, err, domain.ErrValidation)
	require.EqualError(t, err, "Invalid status: archived")
}

func TestClientListAndStats(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), time.Minute)

	var ids []string
	for i := 1; i <= 12; i++ {
		c, err := svc.Create(ctx, clientInput(i))
		require.NoError(t, err)
		ids = append(ids, c.ID().String())
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, ClientStats{Total: 12, Active: 12}, stats)

	_, err = svc.ChangeStatus(ctx, ids[0], "inactive")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, ids[1]))

	// Mutations drop the cached value.
	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, ClientStats{Total: 12, Active: 10, Inactive: 1, Deleted: 1}, stats)

	page, err := svc.List(ctx, ListClientsInput{})
	require.NoError(t, err)
	require.Equal(t, 12, page.Total)
	require.Len(t, page.Data, 10)
	require.Equal(t, 2, page.TotalPages)
	require.True(t, page.HasNext())
	require.False(t, page.HasPrevious())

	page, err = svc.List(ctx, ListClientsInput{Status: "active", Limit: 5, Page: 2, SortBy: "name", SortOrder: "asc"})
	require.NoError(t, err)
	require.Equal(t, 10, page.Total)
	require.Len(t, page.Data, 5)

	page, err = svc.List(ctx, ListClientsInput{Search: "cliente11"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)

	_, err = svc.List(ctx, ListClientsInput{Status: "gone"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.List(ctx, ListClientsInput{SortBy: "password"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestFindPotentialDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), 0)

	in := clientInput(1)
	in.Name = "Construcciones Garcia"
	a, err := svc.Create(ctx, in)
	require.NoError(t, err)

	in = clientInput(2)
	in.Name = "CONSTRUCTORA Norte"
	b, err := svc.Create(ctx, in)
	require.NoError(t, err)

	in = clientInput(3)
	in.Name = "Panaderia Sol"
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)

	dups, err := svc.Duplicates(ctx, a.ID().String())
	require.NoError(t, err)
	require.Len(t, dups, 1)
	require.Equal(t, b.ID(), dups[0].ID())
}

func TestFindPotentialDuplicatesWithAccents(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), 0)

	in := clientInput(1)
	in.Name = "Ángeles Construcciones"
	a, err := svc.Create(ctx, in)
	require.NoError(t, err)

	in = clientInput(2)
	in.Name = "ÁNGELA Reformas"
	b, err := svc.Create(ctx, in)
	require.NoError(t, err)

	dups, err := svc.Duplicates(ctx, a.ID().String())
	require.NoError(t, err)
	require.Len(t, dups, 1)
	require.Equal(t, b.ID(), dups[0].ID())

	page, err := svc.List(ctx, ListClientsInput{Search: "ángeles"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
}

func TestCanDeleteClient(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), 0)

	c, err := svc.Create(ctx, clientInput(1))
	require.NoError(t, err)

	ok, err := svc.Domain.CanDeleteClient(ctx, c.ID())
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Domain.CanDeleteClient(ctx, domain.NewClientID())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClientDeleteChecksCanDeleteClient(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), 0)

	c, err := svc.Create(ctx, clientInput(1))
	require.NoError(t, err)

	var checks int
	hooked := &hookedClients{Clients: svc.Domain.Clients, beforeFindByID: func() error {
		checks++
		return nil
	}}
	svc.Domain.Clients = hooked

	require.NoError(t, svc.Delete(ctx, c.ID().String()))
	require.Equal(t, 1, checks)

	other, err := svc.Create(ctx, clientInput(2))
	require.NoError(t, err)
	boom := errors.New("lookup failed")
	hooked.beforeFindByID = func() error { return boom }

	require.ErrorIs(t, svc.Delete(ctx, other.ID().String()), boom)

	got, err := svc.Get(ctx, other.ID().String())
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, got.Status())
}

func TestClientStatsNotCachedWhenInvalidatedMidway(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t), time.Minute)

	_, err := svc.Create(ctx, clientInput(1))
	require.NoError(t, err)

	var once sync.Once
	svc.Domain.Clients = &hookedClients{Clients: svc.Domain.Clients, beforeCountByStatus: func() {
		once.Do(svc.invalidateStats)
	}}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Total)

	_, cached := svc.stats.Get(statsCacheKey)
	require.False(t, cached, "counts read before an invalidation must not be cached")

	_, err = svc.Stats(ctx)
	require.NoError(t, err)
	_, cached = svc.stats.Get(statsCacheKey)
	require.True(t, cached)
}
