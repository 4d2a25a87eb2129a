package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/api"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		site     string
		username string
		generate bool
		length   int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a new credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}
			prompts := cmd.ErrOrStderr()

			var err error
			if site == "" {
				if site, err = GetSimpleText(app.reader, "Site", prompts); err != nil {
					return err
				}
			}
			if username == "" {
				if username, err = GetSimpleText(app.reader, "Username", prompts); err != nil {
					return err
				}
			}

			var password string
			if generate {
				if password, err = app.client.GeneratePassword(cmd.Context(), length); err != nil {
					return app.sessionError(err)
				}
			} else if password, err = GetNewPassword("Password", prompts); err != nil {
				return err
			}

			masterKey, err := GetPassword("Master key", prompts)
			if err != nil {
				return err
			}

			rec, err := app.client.CreateRecord(cmd.Context(), &api.CreateRecordRequest{
				Site:      site,
				Username:  username,
				Password:  password,
				MasterKey: masterKey,
			})
			if err != nil {
				return app.sessionError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added record %s\n", rec.ID)
			if generate {
				fmt.Fprintf(out, "Generated a %d-character password; use 'passkeeper reveal %s' to see it\n",
					len(password), rec.ID)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&site, "site", "", "Site the credential belongs to")
	f.StringVarP(&username, "username", "u", "", "Login name on the site")
	f.BoolVarP(&generate, "generate", "g", false, "Generate the password instead of prompting for it")
	f.IntVarP(&length, "length", "l", 0, "Length of a generated password")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored credentials without their passwords",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}

			records, err := app.client.ListRecords(cmd.Context())
			if err != nil {
				return app.sessionError(err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No records")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSITE\tUSERNAME\tUPDATED")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Site, r.Username, r.UpdatedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}
}

func newRevealCmd(app *App) *cobra.Command {
	var passwordOnly bool

	cmd := &cobra.Command{
		Use:   "reveal <id>",
		Short: "Decrypt and print a stored credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}

			masterKey, err := GetPassword("Master key", cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			resp, err := app.client.RevealRecord(cmd.Context(), args[0], masterKey)
			if err != nil {
				return app.sessionError(err)
			}

			out := cmd.OutOrStdout()
			if passwordOnly {
				fmt.Fprintln(out, resp.Password)
				return nil
			}
			fmt.Fprintf(out, "Site:     %s\nUsername: %s\nPassword: %s\n", resp.Site, resp.Username, resp.Password)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&passwordOnly, "password-only", "p", false, "Print only the password")
	return cmd
}

var errNothingToUpdate = errors.New("nothing to update; pass --site, --username or --password")

func newUpdateCmd(app *App) *cobra.Command {
	var (
		site           string
		username       string
		changePassword bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a stored credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}

			req := &api.UpdateRecordRequest{ID: args[0]}
			f := cmd.Flags()
			if f.Changed("site") {
				req.Site = &site
			}
			if f.Changed("username") {
				req.Username = &username
			}
			if changePassword {
				prompts := cmd.ErrOrStderr()
				password, err := GetNewPassword("New password", prompts)
				if err != nil {
					return err
				}
				masterKey, err := GetPassword("Master key", prompts)
				if err != nil {
					return err
				}
				req.Password = &password
				req.MasterKey = &masterKey
			}
			if req.Site == nil && req.Username == nil && req.Password == nil {
				return errNothingToUpdate
			}

			rec, err := app.client.UpdateRecord(cmd.Context(), req)
			if err != nil {
				return app.sessionError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated record %s\n", rec.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&site, "site", "", "New site")
	f.StringVarP(&username, "username", "u", "", "New login name")
	f.BoolVar(&changePassword, "password", false, "Prompt for a new password")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a stored credential",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}

			id := args[0]
			if !yes {
				answer, err := GetSimpleText(app.reader, fmt.Sprintf("Delete record %s? [y/N]", id), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				if a := strings.ToLower(answer); a != "y" && a != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			if err := app.client.DeleteRecord(cmd.Context(), id); err != nil {
				return app.sessionError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
