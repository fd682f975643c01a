package root

import (
	"github.com/spf13/cobra"

	"taskmate/internal/tui"
)

func newBoardCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := openApp(ctx, g)
			defer cleanup()

			return tui.RunBoard(ctx, a.session, a.tasks, cmd.OutOrStdout())
		},
	}

	return cmd
}
