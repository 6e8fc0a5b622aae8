// Command panelctl administers a panel deployment directly against its
// database: migrations, operator accounts, sessions and signing keys.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aussiebroadwan/panel/internal/panel/app"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/pkg/cryptox"
	"github.com/spf13/cobra"
)

// env is resolved once per invocation in PersistentPreRunE.
type env struct {
	cfg    app.Config
	out    string
	store  store.Store
	hasher *cryptox.PasswordHasher
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "panelctl",
		Short:         "Administer the panel database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e.cfg = app.LoadConfig()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&e.out, "out", "text", "Output format: text|json")

	root.AddCommand(
		newMigrateCmd(e),
		newUsersCmd(e),
		newSessionsCmd(e),
		newClientsCmd(e),
		newKeysCmd(),
	)
	return root
}

// open connects to the configured database. Migrations are always applied
// first so every command sees the current schema.
func (e *env) open(ctx context.Context) error {
	st, err := app.OpenStore(ctx, e.cfg)
	if err != nil {
		return err
	}
	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return fmt.Errorf("apply migrations: %w", err)
	}
	e.store = st
	return nil
}

func (e *env) openWithHasher(ctx context.Context) error {
	pepper, err := cryptox.LoadPepper(e.cfg.PepperFile)
	if err != nil {
		return err
	}
	e.hasher = cryptox.NewPasswordHasher(pepper, cryptox.DefaultParams)
	return e.open(ctx)
}

func (e *env) close() {
	if e.store != nil {
		_ = e.store.Close()
	}
}

func (e *env) print(cmd *cobra.Command, v any, text string) error {
	if e.out == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
