package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/internal/panel/store/drivers/sqlite"
	"github.com/aussiebroadwan/panel/pkg/cryptox"
	"github.com/aussiebroadwan/panel/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "panel-test"

// Cheap argon2 settings; the defaults make the suite slow.
var testParams = cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type fixture struct {
	store store.Store
	users *UserService
	auth  *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := newTestStore(t)
	hasher := cryptox.NewPasswordHasher("pepper", testParams)

	signer, verifier, err := jwtx.NewKeys(jwtx.KeyOptions{
		Algorithm: "HS256",
		KeyID:     "test",
		Secret:    strings.Repeat("k", jwtx.MinSecretLength),
		Verify:    jwtx.VerifyOptions{Issuer: testIssuer},
	})
	require.NoError(t, err)

	return &fixture{
		store: st,
		users: &UserService{Store: st, Hasher: hasher, TOTPIssuer: "Panel Test"},
		auth: &AuthService{
			Store:    st,
			Hasher:   hasher,
			Signer:   signer,
			Verifier: verifier,
			Issuer:   testIssuer,
		},
	}
}

func clientInput(i int) CreateClientInput {
	return CreateClientInput{
		Name:    fmt.Sprintf("Cliente %d SL", i),
		Email:   fmt.Sprintf("cliente%d@example.com", i),
		Phone:   fmt.Sprintf("6%08d", i),
		Address: "Calle Mayor 1, Madrid",
		TaxID:   fmt.Sprintf("%08dZ", i),
	}
}

func ptr[T any](v T) *T { return &v }
