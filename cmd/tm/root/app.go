package root

import (
	"context"
	"log/slog"

	"taskmate/internal/engine"
	"taskmate/internal/storage"
	"taskmate/internal/ui"
)

// app holds the two stores for one command run.
type app struct {
	session *engine.SessionStore
	tasks   *engine.TaskStore
}

func (a *app) styles() ui.Styles {
	return ui.NewStyles(a.session.Theme() == engine.ThemeDark)
}

// openRepos opens the database. When that fails the app still runs, in memory only.
func openRepos(ctx context.Context, g *globals) (engine.KV, engine.TaskRepository, func()) {
	path, err := storage.ResolveDBPath(g.cfg.DBPath)
	if err != nil {
		g.log.Warn("no database path; running in memory", slog.Any("err", err))
		return storage.NewMemoryKV(), storage.NewMemoryTaskRepo(), func() {}
	}
	if path == storage.MemoryPath {
		return storage.NewMemoryKV(), storage.NewMemoryTaskRepo(), func() {}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		g.log.Warn("database unavailable; running in memory", slog.String("path", path), slog.Any("err", err))
		return storage.NewMemoryKV(), storage.NewMemoryTaskRepo(), func() {}
	}
	g.log.Debug("database opened", slog.String("path", path))
	cleanup := func() {
		_ = db.Close()
	}
	return storage.NewKVRepo(db), storage.NewTaskRepo(db), cleanup
}

func openApp(ctx context.Context, g *globals) (*app, func()) {
	kv, repo, cleanup := openRepos(ctx, g)

	session := engine.NewSessionStore(ctx, kv, engine.SessionOptions{
		Logger:      g.log,
		Delay:       g.cfg.Auth.Delay,
		PrefersDark: prefersDark(g.cfg.Theme),
	})
	tasks := engine.NewTaskStore(ctx, repo, engine.TaskStoreOptions{Logger: g.log})
	return &app{session: session, tasks: tasks}, cleanup
}

// prefersDark returns the configured theme as the dark-mode hint, or asks the terminal.
func prefersDark(configured string) func() bool {
	if t, ok := engine.ParseTheme(configured); ok {
		return func() bool { return t == engine.ThemeDark }
	}
	return ui.PrefersDark
}
