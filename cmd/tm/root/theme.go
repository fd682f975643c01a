package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

func newThemeCmd(g *globals) *cobra.Command {
	var toggle bool

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the theme, or switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := openApp(ctx, g)
			defer cleanup()

			t := a.session.Theme()
			if toggle {
				t = a.session.ToggleTheme(ctx)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.ThemeIcon(t == engine.ThemeDark), t)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&toggle, "toggle", "t", false, "Switch between light and dark")

	return cmd
}
