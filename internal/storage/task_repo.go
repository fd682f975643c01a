package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type TaskRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db, log: slog.Default()}
}

func (r *TaskRepo) Insert(ctx context.Context, t Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, priority, completed, created_at, due_date, assigned_to)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Priority, boolToInt(t.Completed), formatTime(t.CreatedAt), formatDate(t.DueDate), t.AssignedTo)
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

// ListAll returns every task in insertion order. Rows whose dates cannot be
// parsed are logged and left out.
func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, priority, completed, created_at, due_date, assigned_to
		FROM tasks
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		row, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		t, err := row.task()
		if err != nil {
			r.log.Warn("skipping unreadable task row", slog.String("task_id", row.id), slog.Any("err", err))
			continue
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}

func (r *TaskRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, boolToInt(completed), id)
	if err != nil {
		return fmt.Errorf("task set completed: %w", err)
	}
	return nil
}

func (r *TaskRepo) SetPriority(ctx context.Context, id string, priority string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET priority = ? WHERE id = ?`, priority, id)
	if err != nil {
		return fmt.Errorf("task set priority: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

type scanner interface {
	Scan(dest ...any) error
}

// taskRow is a tasks row as stored, before its dates are parsed.
type taskRow struct {
	id         string
	title      string
	priority   string
	completed  int
	createdRaw string
	dueRaw     sql.NullString
	assigned   sql.NullString
}

func scanTaskRow(row scanner) (taskRow, error) {
	var r taskRow
	if err := row.Scan(&r.id, &r.title, &r.priority, &r.completed, &r.createdRaw, &r.dueRaw, &r.assigned); err != nil {
		return taskRow{}, fmt.Errorf("task scan: %w", err)
	}
	return r, nil
}

func (r taskRow) task() (Task, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, r.createdRaw)
	if err != nil {
		return Task{}, fmt.Errorf("task %s created_at: %w", r.id, err)
	}
	var due *time.Time
	if r.dueRaw.Valid && r.dueRaw.String != "" {
		v, err := time.Parse(time.DateOnly, r.dueRaw.String)
		if err != nil {
			return Task{}, fmt.Errorf("task %s due_date: %w", r.id, err)
		}
		due = &v
	}
	var assignedTo *string
	if r.assigned.Valid {
		v := r.assigned.String
		assignedTo = &v
	}

	return Task{
		ID:         r.id,
		Title:      r.title,
		Priority:   r.priority,
		Completed:  r.completed != 0,
		CreatedAt:  createdAt,
		DueDate:    due,
		AssignedTo: assignedTo,
	}, nil
}
