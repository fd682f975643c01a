package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskmate/internal/storage"
)

// TaskRepository is where the task store writes its mutations through to.
type TaskRepository interface {
	ListAll(ctx context.Context) ([]storage.Task, error)
	Insert(ctx context.Context, t storage.Task) error
	Delete(ctx context.Context, id string) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	SetPriority(ctx context.Context, id string, priority string) error
}

type TaskStoreOptions struct {
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
}

// TaskStore owns the ordered task collection and the active view filter.
// The in-memory collection is the source of truth; repository failures are
// logged and do not fail the operation.
type TaskStore struct {
	repo  TaskRepository
	log   *slog.Logger
	now   func() time.Time
	newID func() string

	// writeMu is held across a mutation and its write-through, so the
	// repository sees changes in the same order as memory.
	writeMu sync.Mutex

	mu     sync.Mutex
	tasks  []Task
	filter Filter
}

// NewTaskStore loads persisted tasks from repo. A nil repo keeps tasks in memory only.
func NewTaskStore(ctx context.Context, repo TaskRepository, opts TaskStoreOptions) *TaskStore {
	s := &TaskStore{
		repo:   repo,
		log:    opts.Logger,
		now:    opts.Now,
		newID:  opts.NewID,
		filter: FilterAll,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if repo != nil {
		s.load(ctx)
	}
	return s
}

func (s *TaskStore) load(ctx context.Context) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Warn("tasks unreadable; starting empty", slog.Any("err", PersistenceReadError{Key: "tasks", Err: err}))
		return
	}
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if seen[r.ID] {
			s.log.Warn("skipping duplicate task id", slog.String("task_id", r.ID))
			continue
		}
		seen[r.ID] = true
		t := fromRow(r)
		if !t.Priority.IsValid() {
			s.log.Warn("stored task has unknown priority", slog.String("task_id", r.ID), slog.String("priority", r.Priority))
			t.Priority = DefaultPriority
		}
		s.tasks = append(s.tasks, t)
	}
}

// AddTask appends a new incomplete task created now and returns it.
// A blank or already-used id is replaced with a generated one, so ids stay unique.
func (s *TaskStore) AddTask(ctx context.Context, in NewTask) Task {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	id := in.ID
	if id == "" || s.indexOf(id) >= 0 {
		id = s.uniqueID()
	}
	prio := in.Priority
	if !prio.IsValid() {
		prio = DefaultPriority
	}
	t := Task{
		ID:         id,
		Title:      in.Title,
		Priority:   prio,
		Completed:  false,
		CreatedAt:  s.now(),
		DueDate:    in.DueDate,
		AssignedTo: in.AssignedTo,
	}
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	s.persist("insert", t.ID, func() error { return s.repo.Insert(ctx, toRow(t)) })
	return t
}

// RemoveTask deletes the task with id. Unknown ids are ignored.
func (s *TaskStore) RemoveTask(ctx context.Context, id string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.mu.Unlock()

	s.persist("delete", id, func() error { return s.repo.Delete(ctx, id) })
}

// ToggleTask flips completion of the task with id. Unknown ids are ignored.
func (s *TaskStore) ToggleTask(ctx context.Context, id string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	completed := s.tasks[i].Completed
	s.mu.Unlock()

	s.persist("toggle", id, func() error { return s.repo.SetCompleted(ctx, id, completed) })
}

// UpdateTaskPriority sets the priority of the task with id. Unknown ids are ignored.
func (s *TaskStore) UpdateTaskPriority(ctx context.Context, id string, p Priority) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.tasks[i].Priority = p
	s.mu.Unlock()

	s.persist("priority", id, func() error { return s.repo.SetPriority(ctx, id, string(p)) })
}

func (s *TaskStore) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

func (s *TaskStore) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Tasks returns a copy of the collection in display order.
func (s *TaskStore) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with id.
func (s *TaskStore) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Visible derives the active view from current state and the clock.
func (s *TaskStore) Visible() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilteredTasks(s.tasks, s.filter, s.now())
}

func (s *TaskStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CompletionStats(s.tasks)
}

func (s *TaskStore) TodayCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TodayCount(s.tasks, s.now())
}

func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *TaskStore) persist(op, id string, fn func() error) {
	if s.repo == nil {
		return
	}
	if err := fn(); err != nil {
		s.log.Warn("task change not saved; continuing in memory",
			slog.String("op", op),
			slog.String("task_id", id),
			slog.Any("err", err),
		)
	}
}

func toRow(t Task) storage.Task {
	return storage.Task{
		ID:         t.ID,
		Title:      t.Title,
		Priority:   string(t.Priority),
		Completed:  t.Completed,
		CreatedAt:  t.CreatedAt,
		DueDate:    t.DueDate,
		AssignedTo: t.AssignedTo,
	}
}

func fromRow(r storage.Task) Task {
	return Task{
		ID:         r.ID,
		Title:      r.Title,
		Priority:   Priority(r.Priority),
		Completed:  r.Completed,
		CreatedAt:  r.CreatedAt,
		DueDate:    r.DueDate,
		AssignedTo: r.AssignedTo,
	}
}
