package root

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out (your tasks and theme stay)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := openApp(ctx, g)
			defer cleanup()

			a.session.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}

	return cmd
}
