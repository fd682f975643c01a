package storage

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestKVRepoMissingKeyIsNotAnError(t *testing.T) {
	kv := NewKVRepo(openTestDB(t))
	v, ok, err := kv.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("get missing=(%q, %v), want (\"\", false)", v, ok)
	}
}

func TestKVRepoSetGetRemove(t *testing.T) {
	ctx := context.Background()
	kv := NewKVRepo(openTestDB(t))

	if err := kv.Set(ctx, KeyTheme, "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, KeyTheme, "light"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, KeyTheme)
	if err != nil || !ok || v != "light" {
		t.Fatalf("get=(%q, %v, %v), want (light, true, nil)", v, ok, err)
	}

	if err := kv.Remove(ctx, KeyTheme); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := kv.Remove(ctx, KeyTheme); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, KeyTheme); ok {
		t.Fatalf("expected key to be gone")
	}
}

func TestKVRepoSetMany(t *testing.T) {
	ctx := context.Background()
	kv := NewKVRepo(openTestDB(t))

	err := kv.SetMany(ctx, map[string]string{
		KeySession:         `{"isAuthenticated":true}`,
		KeyRegisteredUsers: `{}`,
	})
	if err != nil {
		t.Fatalf("set many: %v", err)
	}
	for _, k := range []string{KeySession, KeyRegisteredUsers} {
		if _, ok, err := kv.Get(ctx, k); err != nil || !ok {
			t.Fatalf("get %s: ok=%v err=%v", k, ok, err)
		}
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES ('theme', 'dark')`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want boom", err)
	}

	_, ok, err := NewKVRepo(db).Get(ctx, "theme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("theme written despite rollback")
	}
}

func TestTaskRepoRoundTripKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepo(openTestDB(t))

	created := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	due := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	who := "sam"

	in := []Task{
		{ID: "b", Title: "second by id, first by insert", Priority: "low", CreatedAt: created},
		{ID: "a", Title: "planned", Priority: "high", CreatedAt: created, DueDate: &due},
		{ID: "c", Title: "assigned", Priority: "medium", CreatedAt: created, AssignedTo: &who},
	}
	for _, task := range in {
		if err := repo.Insert(ctx, task); err != nil {
			t.Fatalf("insert %s: %v", task.ID, err)
		}
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len=%d, want 3", len(got))
	}
	for i := range in {
		if got[i].ID != in[i].ID {
			t.Fatalf("order[%d]=%s, want %s", i, got[i].ID, in[i].ID)
		}
	}
	if !got[0].CreatedAt.Equal(created) {
		t.Fatalf("created_at=%v, want %v", got[0].CreatedAt, created)
	}
	if got[1].DueDate == nil || !got[1].DueDate.Equal(due) {
		t.Fatalf("due=%v, want %v", got[1].DueDate, due)
	}
	if got[2].AssignedTo == nil || *got[2].AssignedTo != who {
		t.Fatalf("assigned=%v, want %s", got[2].AssignedTo, who)
	}
}

func TestTaskRepoUpdatesAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepo(openTestDB(t))

	if err := repo.Insert(ctx, Task{ID: "1", Title: "x", Priority: "low", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.SetCompleted(ctx, "1", true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if err := repo.SetPriority(ctx, "1", "high"); err != nil {
		t.Fatalf("set priority: %v", err)
	}
	got, _ := repo.ListAll(ctx)
	if !got[0].Completed || got[0].Priority != "high" {
		t.Fatalf("task=%+v, want completed high", got[0])
	}

	if err := repo.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	got, _ = repo.ListAll(ctx)
	if len(got) != 0 {
		t.Fatalf("len=%d, want 0", len(got))
	}
}

func TestTaskRepoListAllSkipsUnreadableRows(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewTaskRepo(db)
	repo.log = slog.New(slog.NewTextHandler(io.Discard, nil))

	created := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	if err := repo.Insert(ctx, Task{ID: "good-1", Title: "a", Priority: "low", CreatedAt: created}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, priority, completed, created_at, due_date)
		VALUES ('bad-created', 'x', 'low', 0, 'not-a-time', NULL),
		       ('bad-due', 'y', 'low', 0, ?, 'someday')
	`, formatTime(created))
	if err != nil {
		t.Fatalf("insert corrupt rows: %v", err)
	}
	if err := repo.Insert(ctx, Task{ID: "good-2", Title: "b", Priority: "high", CreatedAt: created}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "good-1" || got[1].ID != "good-2" {
		t.Fatalf("got=%+v, want [good-1 good-2]", got)
	}
}

func TestMemoryTaskRepoDeletePreservesOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTaskRepo()
	for _, id := range []string{"1", "2", "3"} {
		_ = repo.Insert(ctx, Task{ID: id})
	}
	_ = repo.Delete(ctx, "2")
	got, _ := repo.ListAll(ctx)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("got=%+v, want [1 3]", got)
	}
}

func TestResolveDBPath(t *testing.T) {
	got, err := ResolveDBPath("  /tmp/x.db ")
	if err != nil || got != "/tmp/x.db" {
		t.Fatalf("ResolveDBPath=(%q, %v), want /tmp/x.db", got, err)
	}
}
