package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts := cmd.ErrOrStderr()

			if email == "" {
				var err error
				if email, err = GetSimpleText(app.reader, "Email", prompts); err != nil {
					return err
				}
			}
			password, err := GetNewPassword("Password", prompts)
			if err != nil {
				return err
			}

			resp, err := app.client.Register(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := app.saveToken(resp.Token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", resp.Account.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts := cmd.ErrOrStderr()

			if email == "" {
				var err error
				if email, err = GetSimpleText(app.reader, "Email", prompts); err != nil {
					return err
				}
			}
			password, err := GetPassword("Password", prompts)
			if err != nil {
				return err
			}

			resp, err := app.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := app.saveToken(resp.Token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", resp.Account.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.clearToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
