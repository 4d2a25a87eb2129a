package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Snapshot the encrypted vault to object storage",
		Long: "Uploads a snapshot of your records, with passwords still encrypted, " +
			"and prints a time-limited download link. With --output the snapshot is " +
			"downloaded to that file as well.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}

			resp, err := app.client.ExportRecords(cmd.Context())
			if err != nil {
				return app.sessionError(err)
			}

			out := cmd.OutOrStdout()
			if output == "" {
				fmt.Fprintf(out, "Exported %d records\nURL: %s\nExpires: %s\n",
					resp.Records, resp.URL, resp.ExpiresAt.Local().Format(time.DateTime))
				return nil
			}

			f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("open %s: %w", output, err)
			}
			defer f.Close()

			n, err := download(cmd.Context(), resp.URL, f)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Exported %d records to %s (%d bytes)\n", resp.Records, output, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Download the snapshot to this file")
	return cmd
}
