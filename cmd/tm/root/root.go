package root

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"taskmate/internal/config"
	"taskmate/internal/logger"
	"taskmate/internal/ui"
)

const Version = "0.1.0"

// globals is the state shared by every command of one invocation.
type globals struct {
	dbFlag string
	cfg    config.Config
	log    *slog.Logger
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{log: slog.Default()}

	rootCmd := &cobra.Command{
		Use:           "tm",
		Short:         "taskmate: a local-first task list for the terminal",
		Long:          "taskmate keeps your tasks in a local SQLite file, with simple views (all, today, important, planned, assigned) and a TUI board.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			g.cfg = config.Load()
			if cmd.Flags().Changed("db") {
				g.cfg.DBPath = g.dbFlag
			}
			g.log = logger.SetupDefault(cmd.ErrOrStderr(), g.cfg.Log.Level, g.cfg.Log.Format)
		},
	}
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&g.dbFlag, "db", "", "Database file (overrides TASKMATE_DB; \":memory:\" keeps nothing)")

	rootCmd.AddCommand(
		newSignupCmd(g),
		newLoginCmd(g),
		newLogoutCmd(g),
		newWhoamiCmd(g),
		newThemeCmd(g),
		newAddCmd(g),
		newListCmd(g),
		newToggleCmd(g),
		newPriorityCmd(g),
		newRemoveCmd(g),
		newStatsCmd(g),
		newBoardCmd(g),
	)
	return rootCmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.NewStyles(false).Bad.Render(ui.IconError+" "+err.Error()))
		stop()
		os.Exit(1)
	}
}
