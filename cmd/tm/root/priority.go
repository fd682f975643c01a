package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskmate/internal/engine"
)

func newPriorityCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "priority <id> <low|medium|high>",
		Short: "Change a task's priority",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and priority are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := engine.ParsePriority(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, cleanup := openApp(ctx, g)
			defer cleanup()

			t, err := findTask(a, args[0])
			if err != nil {
				return err
			}
			a.tasks.UpdateTaskPriority(ctx, t.ID, p)

			s := a.styles()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", t.Title, s.PriorityText(string(p)))
			return nil
		},
	}

	return cmd
}
