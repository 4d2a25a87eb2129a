package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := app.client.GeneratePassword(cmd.Context(), length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), password)
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", 0, "Password length (server default when 0)")
	return cmd
}

func newPingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is up\n", app.config.ServerEndpointAddr)
			return nil
		},
	}
}
