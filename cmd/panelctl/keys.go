package main

import (
	"fmt"
	"os"

	"github.com/aussiebroadwan/panel/pkg/cryptox"
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage token signing keys",
	}

	var outFile string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate an Ed25519 signing key (PKCS8 PEM) for JWT_KEY_FILE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pemKey, err := cryptox.GenerateEd25519Key()
			if err != nil {
				return err
			}
			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(pemKey)
				return err
			}
			if err := os.WriteFile(outFile, pemKey, 0o600); err != nil {
				return fmt.Errorf("write key: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outFile)
			return nil
		},
	}
	generate.Flags().StringVarP(&outFile, "output", "o", "", "Write the key to a file instead of stdout")

	cmd.AddCommand(generate)
	return cmd
}
