package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"taskmate/internal/engine"
	"taskmate/internal/storage"
)

func newTestBoard(t *testing.T) boardModel {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	ctx := context.Background()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	session := engine.NewSessionStore(ctx, storage.NewMemoryKV(), engine.SessionOptions{
		Logger:      quiet,
		PrefersDark: func() bool { return false },
	})
	tasks := engine.NewTaskStore(ctx, storage.NewMemoryTaskRepo(), engine.TaskStoreOptions{Logger: quiet})
	return newBoardModel(ctx, session, tasks)
}

func press(t *testing.T, m boardModel, key string) (boardModel, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(boardModel), cmd
}

// settle runs a store command and feeds its result back into the model.
func settle(t *testing.T, m boardModel, cmd tea.Cmd) boardModel {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	next, _ := m.Update(cmd())
	return next.(boardModel)
}

func TestBoardAddTask(t *testing.T) {
	m := newTestBoard(t)

	m, _ = press(t, m, "a")
	if !m.adding {
		t.Fatalf("adding=false after a")
	}
	m, _ = press(t, m, "  buy milk ")
	m, cmd := press(t, m, "enter")
	m = settle(t, m, cmd)

	if m.adding {
		t.Fatalf("still adding after save")
	}
	got := m.tasks.Tasks()
	if len(got) != 1 {
		t.Fatalf("tasks=%d, want 1", len(got))
	}
	if got[0].Title != "buy milk" || got[0].Priority != engine.PriorityMedium || got[0].Completed {
		t.Fatalf("task=%+v", got[0])
	}
	if !strings.Contains(m.lastLog, "buy milk") {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
}

func TestBoardAddRejectsBlankTitle(t *testing.T) {
	m := newTestBoard(t)

	m, _ = press(t, m, "a")
	m, _ = press(t, m, "   ")
	m, cmd := press(t, m, "enter")
	if cmd != nil {
		t.Fatalf("expected no command for blank title")
	}
	if !m.adding || m.lastLog != "title is required" {
		t.Fatalf("adding=%v lastLog=%q", m.adding, m.lastLog)
	}

	m, _ = press(t, m, "esc")
	if m.adding || len(m.tasks.Tasks()) != 0 {
		t.Fatalf("esc did not cancel: adding=%v tasks=%d", m.adding, len(m.tasks.Tasks()))
	}
}

func TestBoardToggleAndPriority(t *testing.T) {
	m := newTestBoard(t)
	ctx := context.Background()
	m.tasks.AddTask(ctx, engine.NewTask{ID: "1", Title: "one", Priority: engine.PriorityLow})
	m.tasks.AddTask(ctx, engine.NewTask{ID: "2", Title: "two", Priority: engine.PriorityMedium})

	m, _ = press(t, m, "down")
	m, cmd := press(t, m, "space")
	m = settle(t, m, cmd)
	if got, _ := m.tasks.Get("2"); !got.Completed {
		t.Fatalf("task 2 not completed")
	}
	if got, _ := m.tasks.Get("1"); got.Completed {
		t.Fatalf("task 1 completed")
	}

	m, cmd = press(t, m, "p")
	m = settle(t, m, cmd)
	if got, _ := m.tasks.Get("2"); got.Priority != engine.PriorityHigh {
		t.Fatalf("priority=%q, want high", got.Priority)
	}
	m, cmd = press(t, m, "p")
	m = settle(t, m, cmd)
	if got, _ := m.tasks.Get("2"); got.Priority != engine.PriorityLow {
		t.Fatalf("priority=%q, want low", got.Priority)
	}
}

func TestBoardDeleteClampsSelection(t *testing.T) {
	m := newTestBoard(t)
	ctx := context.Background()
	m.tasks.AddTask(ctx, engine.NewTask{ID: "1", Title: "one"})
	m.tasks.AddTask(ctx, engine.NewTask{ID: "2", Title: "two"})

	m, _ = press(t, m, "down")
	m, cmd := press(t, m, "d")
	m = settle(t, m, cmd)

	if _, ok := m.tasks.Get("2"); ok {
		t.Fatalf("task 2 still present")
	}
	if m.selected != 0 {
		t.Fatalf("selected=%d, want 0", m.selected)
	}

	m, cmd = press(t, m, "d")
	m = settle(t, m, cmd)
	m, cmd = press(t, m, "d")
	if cmd != nil || m.lastLog != "Nothing selected." {
		t.Fatalf("delete on empty list: cmd=%v lastLog=%q", cmd != nil, m.lastLog)
	}
}

func TestBoardSwitchesViews(t *testing.T) {
	m := newTestBoard(t)

	m, _ = press(t, m, "3")
	if f := m.tasks.Filter(); f != engine.FilterImportant {
		t.Fatalf("filter=%q, want important", f)
	}
	m, _ = press(t, m, "tab")
	if f := m.tasks.Filter(); f != engine.FilterPlanned {
		t.Fatalf("filter=%q, want planned", f)
	}
	m, _ = press(t, m, "1")
	m, _ = press(t, m, "shift+tab")
	if f := m.tasks.Filter(); f != engine.FilterAssigned {
		t.Fatalf("filter=%q, want assigned", f)
	}
}

func TestBoardImportantViewHidesOthers(t *testing.T) {
	m := newTestBoard(t)
	ctx := context.Background()
	m.tasks.AddTask(ctx, engine.NewTask{ID: "1", Title: "routine", Priority: engine.PriorityLow})
	m.tasks.AddTask(ctx, engine.NewTask{ID: "2", Title: "urgent", Priority: engine.PriorityHigh})

	m, _ = press(t, m, "3")
	main := m.renderMain()
	if !strings.Contains(main, "urgent") || strings.Contains(main, "routine") {
		t.Fatalf("important view:\n%s", main)
	}
}

func TestBoardToggleTheme(t *testing.T) {
	m := newTestBoard(t)
	if m.styles.Dark {
		t.Fatalf("expected light start")
	}

	m, cmd := press(t, m, "t")
	m = settle(t, m, cmd)
	if !m.styles.Dark || m.session.Theme() != engine.ThemeDark {
		t.Fatalf("dark=%v theme=%q", m.styles.Dark, m.session.Theme())
	}
}

func TestBoardViewGreetsUser(t *testing.T) {
	m := newTestBoard(t)
	ctx := context.Background()
	_, err := m.session.Signup(ctx, engine.SignupInput{
		Email:           "a@b.com",
		Username:        "bob",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	m.tasks.AddTask(ctx, engine.NewTask{ID: "1", Title: "one"})
	m.tasks.AddTask(ctx, engine.NewTask{ID: "2", Title: "two"})
	m.tasks.ToggleTask(ctx, "1")

	out := m.View()
	for _, want := range []string{"Hey, bob", "1/2 (50%)", "All Tasks"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestCycleFilterWraps(t *testing.T) {
	if got := cycleFilter(engine.FilterAssigned, 1); got != engine.FilterAll {
		t.Fatalf("cycleFilter(assigned,+1)=%q", got)
	}
	if got := cycleFilter(engine.FilterAll, -1); got != engine.FilterAssigned {
		t.Fatalf("cycleFilter(all,-1)=%q", got)
	}
}
