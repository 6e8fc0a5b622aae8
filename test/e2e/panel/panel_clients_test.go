//go:build e2e

package panel_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/panel/pkg/panelsdk"
	"github.com/stretchr/testify/require"
)

func TestClientLifecycle(t *testing.T) {
	client := panelsdk.NewSDKClient(setupPanelContainer(t, nil))
	session := bootstrapAndLogin(t, client)
	ctx := t.Context()

	created, err := session.CreateClient(ctx, clientRequest(1))
	require.NoError(t, err)
	require.Equal(t, "active", created.Status)
	require.True(t, created.CanCreateInvoice)

	_, err = session.CreateClient(ctx, clientRequest(1))
	require.True(t, panelsdk.IsConflict(err), "duplicate email: %v", err)

	name := "Cliente Renombrado SL"
	updated, err := session.UpdateClient(ctx, created.ID, panelsdk.UpdateClientRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)
	require.Equal(t, created.Email, updated.Email)

	inactive, err := session.ChangeClientStatus(ctx, created.ID, "inactive")
	require.NoError(t, err)
	require.False(t, inactive.CanCreateInvoice)

	stats, err := session.ClientStats(ctx)
	require.NoError(t, err)
	require.Equal(t, panelsdk.ClientStats{Total: 1, Inactive: 1}, *stats)

	require.NoError(t, session.DeleteClient(ctx, created.ID))

	got, err := session.GetClient(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "deleted", got.Status)

	_, err = session.GetClient(ctx, "3f2b8a9e-6c1d-4e5f-9a7b-1c2d3e4f5a6b")
	require.True(t, panelsdk.IsNotFound(err), "unknown id: %v", err)
}

func TestClientListing(t *testing.T) {
	client := panelsdk.NewSDKClient(setupPanelContainer(t, nil))
	session := bootstrapAndLogin(t, client)
	ctx := t.Context()

	for i := 1; i <= 5; i++ {
		_, err := session.CreateClient(ctx, clientRequest(i))
		require.NoError(t, err)
	}

	page, err := session.ListClients(ctx, panelsdk.ListClientsParams{Page: 1, Limit: 2, SortBy: "name", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, page.Clients, 2)
	require.Equal(t, 5, page.Pagination.Total)
	require.Equal(t, 3, page.Pagination.TotalPages)
	require.True(t, page.Pagination.HasNext)

	found, err := session.ListClients(ctx, panelsdk.ListClientsParams{Search: "cliente3@"})
	require.NoError(t, err)
	require.Len(t, found.Clients, 1)

	dupes, err := session.ClientDuplicates(ctx, found.Clients[0].ID)
	require.NoError(t, err)
	require.Len(t, dupes, 4, "every other \"Cliente\" shares the name prefix")

	_, err = session.ListClients(ctx, panelsdk.ListClientsParams{Status: "archived"})
	require.True(t, panelsdk.IsValidation(err), "bad status: %v", err)
}

func TestClientsRequireLogin(t *testing.T) {
	client := panelsdk.NewSDKClient(setupPanelContainer(t, nil))
	bootstrapAndLogin(t, client)

	anonymous := client.NewSessionFromToken("not-a-token", panelsdk.UserInfo{}, time.Time{})
	_, err := anonymous.ListClients(t.Context(), panelsdk.ListClientsParams{})
	require.True(t, panelsdk.IsUnauthorized(err), "anonymous list: %v", err)
}
