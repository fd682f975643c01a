package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskmate/internal/ui"
)

type statsView struct {
	Today      int `json:"today"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func newStatsCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show today's count and overall progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup := openApp(cmd.Context(), g)
			defer cleanup()

			st := a.tasks.Stats()
			v := statsView{
				Today:      a.tasks.TodayCount(),
				Completed:  st.Completed,
				Total:      st.Total,
				Percentage: st.Percentage(),
			}
			if asJSON {
				return writeJSON(cmd, v)
			}

			s := a.styles()
			fmt.Fprintln(cmd.OutOrStdout(), s.Heading(ui.IconTasks, "Progress"))
			fmt.Fprintln(cmd.OutOrStdout(), s.LabelValue("Today's tasks", v.Today))
			fmt.Fprintln(cmd.OutOrStdout(), s.LabelValue("Completed", fmt.Sprintf("%d/%d", v.Completed, v.Total)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d%%\n", ui.ProgressBar(v.Completed, v.Total, 20), v.Percentage)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print stats as JSON")

	return cmd
}
