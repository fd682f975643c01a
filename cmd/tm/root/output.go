package root

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func taskLine(s ui.Styles, t engine.Task) string {
	parts := []string{
		s.Checkbox(t.Completed),
		s.Muted.Render(t.ID),
		t.Title,
		s.PriorityText(string(t.Priority)),
	}
	if t.DueDate != nil {
		parts = append(parts, s.Muted.Render("due "+t.DueDate.Format("2006-01-02")))
	}
	if t.AssignedTo != nil {
		parts = append(parts, s.Muted.Render("@"+*t.AssignedTo))
	}
	return strings.Join(parts, "  ")
}

// findTask resolves id for commands that should report a missing task.
func findTask(a *app, id string) (engine.Task, error) {
	t, ok := a.tasks.Get(id)
	if !ok {
		return engine.Task{}, fmt.Errorf("task not found: %s", id)
	}
	return t, nil
}
