package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	var (
		configPath string
		server     string
		dataDir    string
		timeout    time.Duration
		useTLS     bool
		caFile     string
	)

	root := &cobra.Command{
		Use:           "passkeeper",
		Short:         "passkeeper keeps site credentials encrypted under your master key",
		SilenceUsage: true,
		// PersistentPreRunE runs before every subcommand: config file,
		// then flags, then the connection.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := app.config.LoadFile(configPath); err != nil {
					return err
				}
			}

			f := cmd.Flags()
			if f.Changed("server") {
				app.config.ServerEndpointAddr = server
			}
			if f.Changed("data-dir") {
				app.config.DataDir = dataDir
			}
			if f.Changed("timeout") {
				app.config.RequestTimeout = timeout
			}
			if f.Changed("tls") {
				app.config.TLS = useTLS
			}
			if f.Changed("tls-ca") {
				app.config.TLSCAFile = caFile
				app.config.TLS = true
			}

			return app.connect()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	pf.StringVarP(&server, "server", "s", app.config.ServerEndpointAddr, "Server address (host:port)")
	pf.StringVar(&dataDir, "data-dir", app.config.DataDir, "Directory holding the session token")
	pf.DurationVar(&timeout, "timeout", app.config.RequestTimeout, "Per-request timeout")
	pf.BoolVar(&useTLS, "tls", app.config.TLS, "Connect over TLS (without it master keys travel in plaintext)")
	pf.StringVar(&caFile, "tls-ca", app.config.TLSCAFile, "PEM file with the CA that signed the server certificate")

	root.AddCommand(
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newAddCmd(app),
		newListCmd(app),
		newRevealCmd(app),
		newUpdateCmd(app),
		newDeleteCmd(app),
		newGenerateCmd(app),
		newExportCmd(app),
		newPingCmd(app),
	)

	return root
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	app := NewApp()
	defer app.close()
	return NewRootCommand(app).ExecuteContext(ctx)
}
