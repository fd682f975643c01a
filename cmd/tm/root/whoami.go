package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskmate/internal/ui"
)

func newWhoamiCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup := openApp(cmd.Context(), g)
			defer cleanup()

			snap := a.session.Snapshot()
			if !snap.IsAuthenticated || snap.CurrentUser == nil {
				return errors.New("not signed in; run `tm login` or `tm signup`")
			}

			s := a.styles()
			fmt.Fprintln(cmd.OutOrStdout(), s.Title.Render("Hey, "+snap.CurrentUser.Username)+" "+ui.IconWave)
			fmt.Fprintln(cmd.OutOrStdout(), s.LabelValue("Email", snap.CurrentUser.Email))
			return nil
		},
	}

	return cmd
}
