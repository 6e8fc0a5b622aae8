package main

import (
	"fmt"

	"github.com/aussiebroadwan/panel/internal/panel/service"
	"github.com/spf13/cobra"
)

func newSessionsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage login sessions",
	}

	clean := &cobra.Command{
		Use:   "clean",
		Short: "Delete expired sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(cmd.Context()); err != nil {
				return err
			}
			defer e.close()

			auth := &service.AuthService{Store: e.store}
			n, err := auth.CleanExpiredSessions(cmd.Context())
			if err != nil {
				return err
			}
			return e.print(cmd, map[string]int64{"deleted": n}, fmt.Sprintf("deleted %d expired session(s)", n))
		},
	}

	revoke := &cobra.Command{
		Use:   "revoke <username>",
		Short: "Delete every session of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(cmd.Context()); err != nil {
				return err
			}
			defer e.close()

			users := &service.UserService{Store: e.store}
			u, err := users.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			auth := &service.AuthService{Store: e.store}
			n, err := auth.Logout(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			return e.print(cmd, map[string]any{"username": u.Username, "deleted": n},
				fmt.Sprintf("revoked %d session(s) of %s", n, u.Username))
		},
	}

	cmd.AddCommand(clean, revoke)
	return cmd
}
