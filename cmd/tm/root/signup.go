package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

func newSignupCmd(g *globals) *cobra.Command {
	var in engine.SignupInput

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Long:  "Create a local account and sign in. Accounts are a local convenience: passwords are checked against the password policy and never stored.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := openApp(ctx, g)
			defer cleanup()

			if !cmd.Flags().Changed("confirm") {
				in.ConfirmPassword = in.Password
			}
			u, err := a.session.Signup(ctx, in)
			if err != nil {
				return err
			}

			s := a.styles()
			fmt.Fprintln(cmd.OutOrStdout(), s.Good.Render(ui.IconDone+" Account created."))
			fmt.Fprintln(cmd.OutOrStdout(), "Hey, "+u.Username+" "+ui.IconWave)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&in.Username, "username", "u", "", "Username (at least 3 characters)")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "Password (8+ chars, an uppercase letter, a number, a special character)")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm", "", "Repeat the password (defaults to --password)")

	return cmd
}
