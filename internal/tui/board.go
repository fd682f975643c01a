package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"taskmate/internal/engine"
)

// RunBoard runs the interactive board until the user quits.
func RunBoard(ctx context.Context, session *engine.SessionStore, tasks *engine.TaskStore, out io.Writer) error {
	m := newBoardModel(ctx, session, tasks)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
