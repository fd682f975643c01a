package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

type boardModel struct {
	ctx     context.Context
	session *engine.SessionStore
	tasks   *engine.TaskStore
	styles  ui.Styles

	width  int
	height int

	selected int
	adding   bool
	input    textinput.Model

	lastLog string
}

type changedMsg struct {
	note string
}

type themeMsg struct {
	theme engine.Theme
}

func newBoardModel(ctx context.Context, session *engine.SessionStore, tasks *engine.TaskStore) boardModel {
	in := textinput.New()
	in.Placeholder = "What needs doing?"
	in.Prompt = ui.IconPlus + " "
	in.CharLimit = 200

	return boardModel{
		ctx:     ctx,
		session: session,
		tasks:   tasks,
		styles:  ui.NewStyles(session.Theme() == engine.ThemeDark),
		input:   in,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) addCmd(title string) tea.Cmd {
	return func() tea.Msg {
		t := m.tasks.AddTask(m.ctx, engine.NewTask{Title: title, Priority: engine.DefaultPriority})
		return changedMsg{note: fmt.Sprintf("Added %q.", t.Title)}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		m.tasks.ToggleTask(m.ctx, id)
		t, ok := m.tasks.Get(id)
		if !ok {
			return changedMsg{note: "Task not found."}
		}
		if t.Completed {
			return changedMsg{note: fmt.Sprintf("Completed %q.", t.Title)}
		}
		return changedMsg{note: fmt.Sprintf("Reopened %q.", t.Title)}
	}
}

func (m boardModel) priorityCmd(id string, p engine.Priority) tea.Cmd {
	return func() tea.Msg {
		m.tasks.UpdateTaskPriority(m.ctx, id, p)
		return changedMsg{note: "Priority set to " + string(p) + "."}
	}
}

func (m boardModel) removeCmd(id string, title string) tea.Cmd {
	return func() tea.Msg {
		m.tasks.RemoveTask(m.ctx, id)
		return changedMsg{note: fmt.Sprintf("Removed %q.", title)}
	}
}

func (m boardModel) themeCmd() tea.Cmd {
	return func() tea.Msg {
		return themeMsg{theme: m.session.ToggleTheme(m.ctx)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case changedMsg:
		m.lastLog = msg.note
		m.selected = clampIndex(m.selected, len(m.tasks.Visible()))
		return m, nil
	case themeMsg:
		m.styles = ui.NewStyles(msg.theme == engine.ThemeDark)
		m.lastLog = "Theme: " + string(msg.theme) + "."
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m boardModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		m.lastLog = "Cancelled."
		return m, nil
	case "enter":
		title, err := engine.NormalizeTitle(m.input.Value())
		if err != nil {
			m.lastLog = err.Error()
			return m, nil
		}
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		return m, m.addCmd(title)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m boardModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.tasks.Visible()
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(visible)-1 {
			m.selected++
		}
		return m, nil
	case "tab", "shift+tab", "right", "left", "l", "h":
		step := 1
		if key == "shift+tab" || key == "left" || key == "h" {
			step = -1
		}
		m.setView(cycleFilter(m.tasks.Filter(), step))
		return m, nil
	case "1", "2", "3", "4", "5":
		m.setView(engine.Filters[int(key[0]-'1')])
		return m, nil
	case "a", "n":
		m.adding = true
		m.lastLog = "New task: enter to save, esc to cancel."
		return m, m.input.Focus()
	case "t":
		return m, m.themeCmd()
	}

	sel, ok := selectedTask(visible, m.selected)
	switch key {
	case "c", " ", "enter":
		if !ok {
			m.lastLog = "Nothing selected."
			return m, nil
		}
		return m, m.toggleCmd(sel.ID)
	case "p":
		if !ok {
			m.lastLog = "Nothing selected."
			return m, nil
		}
		return m, m.priorityCmd(sel.ID, nextPriority(sel.Priority))
	case "d", "x", "delete":
		if !ok {
			m.lastLog = "Nothing selected."
			return m, nil
		}
		return m, m.removeCmd(sel.ID, sel.Title)
	}
	return m, nil
}

func (m *boardModel) setView(f engine.Filter) {
	m.tasks.SetFilter(f)
	m.selected = 0
	m.lastLog = "View: " + string(f) + "."
}

func (m boardModel) View() string {
	s := m.styles
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	left := lipgloss.NewStyle().Width(leftW).Render(sidebar)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", main)
	return header + "\n\n" + body + "\n" + s.Muted.Render(footer) + "\n"
}

func (m boardModel) renderHeader() string {
	s := m.styles
	snap := m.session.Snapshot()
	who := "not signed in"
	if snap.CurrentUser != nil {
		who = "Hey, " + snap.CurrentUser.Username + " " + ui.IconWave
	}
	return s.Title.Render("taskmate") + s.Muted.Render(" | ") + s.Text.Render(who) + s.Muted.Render(" | ") + ui.ThemeIcon(s.Dark)
}

func (m boardModel) renderSidebar() string {
	s := m.styles
	active := m.tasks.Filter()
	stats := m.tasks.Stats()

	lines := []string{s.H2.Render("Views")}
	for i, f := range engine.Filters {
		label := fmt.Sprintf("%d %s %s", i+1, ui.ViewIcon(string(f)), viewTitle(f))
		if f == active {
			lines = append(lines, s.ActiveView.Render("> "+label))
		} else {
			lines = append(lines, s.Text.Render("  "+label))
		}
	}
	lines = append(lines, "")
	lines = append(lines, s.H2.Render("Progress"))
	lines = append(lines, s.LabelValue("Today", m.tasks.TodayCount()))
	lines = append(lines, s.LabelValue("Done", fmt.Sprintf("%d/%d (%d%%)", stats.Completed, stats.Total, stats.Percentage())))
	lines = append(lines, ui.ProgressBar(stats.Completed, stats.Total, 20))
	lines = append(lines, "")
	lines = append(lines, s.H2.Render("Keys"))
	lines = append(lines, s.Muted.Render("j/k move  tab/1-5 view"))
	lines = append(lines, s.Muted.Render("space done  p priority"))
	lines = append(lines, s.Muted.Render("a add  d delete"))
	lines = append(lines, s.Muted.Render("t theme  q quit"))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	s := m.styles
	f := m.tasks.Filter()
	visible := m.tasks.Visible()

	out := []string{s.Heading(ui.ViewIcon(string(f)), viewTitle(f))}
	if len(visible) == 0 {
		out = append(out, s.Muted.Render("(no tasks)"))
		return strings.Join(out, "\n")
	}
	selected := clampIndex(m.selected, len(visible))
	for i, t := range visible {
		row := fmt.Sprintf("%s %s  %s", s.Checkbox(t.Completed), t.Title, s.PriorityText(string(t.Priority)))
		if t.DueDate != nil {
			row += s.Muted.Render("  due " + t.DueDate.Format("2006-01-02"))
		}
		if t.AssignedTo != nil {
			row += s.Muted.Render("  @" + *t.AssignedTo)
		}
		if i == selected {
			out = append(out, s.SelectedRow.Render("> ")+row)
		} else {
			out = append(out, "  "+row)
		}
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	if m.adding {
		return m.input.View()
	}
	return m.lastLog
}

func viewTitle(f engine.Filter) string {
	switch f {
	case engine.FilterToday:
		return "My Day"
	case engine.FilterImportant:
		return "Important"
	case engine.FilterPlanned:
		return "Planned"
	case engine.FilterAssigned:
		return "Assigned to me"
	default:
		return "All Tasks"
	}
}

func cycleFilter(cur engine.Filter, step int) engine.Filter {
	n := len(engine.Filters)
	for i, f := range engine.Filters {
		if f == cur {
			return engine.Filters[((i+step)%n+n)%n]
		}
	}
	return engine.FilterAll
}

func nextPriority(p engine.Priority) engine.Priority {
	switch p {
	case engine.PriorityLow:
		return engine.PriorityMedium
	case engine.PriorityMedium:
		return engine.PriorityHigh
	default:
		return engine.PriorityLow
	}
}

func selectedTask(visible []engine.Task, i int) (engine.Task, bool) {
	if i < 0 || i >= len(visible) {
		return engine.Task{}, false
	}
	return visible[i], true
}

func clampIndex(i int, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
