package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

func newListCmd(g *globals) *cobra.Command {
	var view string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in a view (all|today|important|planned|assigned)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := engine.ParseFilter(view)
			if err != nil {
				return err
			}

			a, cleanup := openApp(cmd.Context(), g)
			defer cleanup()

			a.tasks.SetFilter(f)
			visible := a.tasks.Visible()
			if asJSON {
				return writeJSON(cmd, visible)
			}

			s := a.styles()
			fmt.Fprintln(cmd.OutOrStdout(), s.Heading(ui.ViewIcon(string(f)), string(f)))
			if len(visible) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), s.Muted.Render("(no tasks)"))
				return nil
			}
			for _, t := range visible {
				fmt.Fprintln(cmd.OutOrStdout(), taskLine(s, t))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&view, "view", "v", string(engine.FilterAll), "View to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print tasks as JSON")

	return cmd
}
