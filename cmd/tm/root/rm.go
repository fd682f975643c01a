package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskmate/internal/ui"
)

func newRemoveCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a task",
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

			t, err := findTask(a, args[0])
			if err != nil {
				return err
			}
			a.tasks.RemoveTask(ctx, t.ID)
			fmt.Fprintln(cmd.OutOrStdout(), ui.IconTrash+" Removed "+t.Title)
			return nil
		},
	}

	return cmd
}
