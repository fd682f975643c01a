package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskmate/internal/ui"
)

func newToggleCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"do"},
		Short:   "Mark a task done, or not done again",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := openApp(ctx, g)
			defer cleanup()

			if _, err := findTask(a, args[0]); err != nil {
				return err
			}
			a.tasks.ToggleTask(ctx, args[0])
			t, err := findTask(a, args[0])
			if err != nil {
				return err
			}

			s := a.styles()
			if t.Completed {
				fmt.Fprintln(cmd.OutOrStdout(), s.Good.Render(ui.IconDone+" Done: ")+t.Title)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), s.Warn.Render("Reopened: ")+t.Title)
			}
			return nil
		},
	}

	return cmd
}
