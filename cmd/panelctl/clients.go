package main

import (
	"fmt"

	"github.com/aussiebroadwan/panel/internal/panel/service"
	"github.com/spf13/cobra"
)

func newClientsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Inspect the client registry",
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print client counts per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(cmd.Context()); err != nil {
				return err
			}
			defer e.close()

			s, err := service.NewClientService(e.store, 0).Stats(cmd.Context())
			if err != nil {
				return err
			}
			return e.print(cmd, s, fmt.Sprintf("total=%d active=%d inactive=%d deleted=%d",
				s.Total, s.Active, s.Inactive, s.Deleted))
		},
	}

	cmd.AddCommand(stats)
	return cmd
}
