package root

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

func newAddCmd(g *globals) *cobra.Command {
	var priority string
	var due string
	var assign string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := engine.NormalizeTitle(strings.Join(args, " "))
			if err != nil {
				return err
			}
			p, err := engine.ParsePriority(priority)
			if err != nil {
				return err
			}
			in := engine.NewTask{Title: title, Priority: p}
			if strings.TrimSpace(due) != "" {
				d, err := time.Parse(time.DateOnly, strings.TrimSpace(due))
				if err != nil {
					return engine.ValidationError{Field: "due", Message: fmt.Sprintf("invalid due date %q (want YYYY-MM-DD)", due)}
				}
				in.DueDate = &d
			}
			if who := strings.TrimSpace(assign); who != "" {
				in.AssignedTo = &who
			}

			ctx := cmd.Context()
			a, cleanup := openApp(ctx, g)
			defer cleanup()

			t := a.tasks.AddTask(ctx, in)
			if asJSON {
				return writeJSON(cmd, t)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.IconPlus+" Added "+taskLine(a.styles(), t))
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", string(engine.DefaultPriority), "Priority (low|medium|high)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assign, "assign", "", "Assign to someone")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the task as JSON")

	return cmd
}
