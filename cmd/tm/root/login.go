package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

func newLoginCmd(g *globals) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a registered email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := openApp(ctx, g)
			defer cleanup()

			u, err := a.session.Login(ctx, email, password)
			if err != nil {
				var unknown engine.UnknownAccountError
				if errors.As(err, &unknown) {
					return fmt.Errorf("%w; %s", err, unknown.Hint())
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Hey, "+u.Username+" "+ui.IconWave)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")

	return cmd
}
