package engine

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskmate/internal/storage"
)

// KV is the durable key-value surface the session store persists through.
// Get reports a missing key as ok=false.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, entries map[string]string) error
	Remove(ctx context.Context, key string) error
}

type SessionOptions struct {
	Logger *slog.Logger
	// Delay simulates identity-provider latency on login and signup.
	Delay time.Duration
	// PrefersDark is the platform dark-mode hint, consulted only when no theme is stored.
	PrefersDark func() bool
	NewID       func() string
}

// SessionStore owns the authentication state and the registered-user directory.
//
// Authentication is a mock: passwords are policy-checked on signup and otherwise
// ignored. Nothing here is a security boundary.
type SessionStore struct {
	kv    KV
	log   *slog.Logger
	delay time.Duration
	newID func() string

	// writeMu is held across a state change and its write, so stored
	// records change in the same order as memory.
	writeMu sync.Mutex

	mu      sync.Mutex
	user    *User
	authed  bool
	pending bool
	errMsg  string
	theme   Theme

	// registered holds signups from this run; they win over the stored directory.
	registered map[string]User
}

type sessionSnapshot struct {
	User            *User `json:"user"`
	IsAuthenticated *bool `json:"isAuthenticated"`
}

// NewSessionStore builds the store from persisted state.
// Unreadable records are logged and treated as absent.
func NewSessionStore(ctx context.Context, kv KV, opts SessionOptions) *SessionStore {
	s := &SessionStore{
		kv:    kv,
		log:   opts.Logger,
		delay: opts.Delay,
		newID: opts.NewID,

		registered: map[string]User{},
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	s.theme = s.loadTheme(ctx, opts.PrefersDark)
	if snap, ok := s.loadSnapshot(ctx); ok {
		s.user = snap.User
		s.authed = *snap.IsAuthenticated
	}
	return s
}

func (s *SessionStore) loadTheme(ctx context.Context, prefersDark func() bool) Theme {
	raw, ok, err := s.kv.Get(ctx, storage.KeyTheme)
	if err != nil {
		s.log.Warn("theme preference unreadable", slog.Any("err", PersistenceReadError{Key: storage.KeyTheme, Err: err}))
	}
	if ok {
		if t, valid := ParseTheme(raw); valid {
			return t
		}
		s.log.Warn("ignoring stored theme", slog.String("value", raw))
	}
	if prefersDark != nil && prefersDark() {
		return ThemeDark
	}
	return ThemeLight
}

func (s *SessionStore) loadSnapshot(ctx context.Context) (sessionSnapshot, bool) {
	raw, ok, err := s.kv.Get(ctx, storage.KeySession)
	if err != nil {
		s.log.Warn("session snapshot unreadable", slog.Any("err", PersistenceReadError{Key: storage.KeySession, Err: err}))
		return sessionSnapshot{}, false
	}
	if !ok {
		return sessionSnapshot{}, false
	}
	var snap sessionSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.log.Warn("discarding malformed session snapshot", slog.Any("err", PersistenceReadError{Key: storage.KeySession, Err: err}))
		return sessionSnapshot{}, false
	}
	if snap.User == nil || snap.IsAuthenticated == nil {
		s.log.Warn("discarding incomplete session snapshot", slog.String("key", storage.KeySession))
		return sessionSnapshot{}, false
	}
	return snap, true
}

// Snapshot returns a copy of the current session.
func (s *SessionStore) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := Session{
		IsAuthenticated: s.authed,
		Pending:         s.pending,
		ErrorMessage:    s.errMsg,
		Theme:           s.theme,
	}
	if s.user != nil {
		u := *s.user
		out.CurrentUser = &u
	}
	return out
}

func (s *SessionStore) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// LoginStart marks a login as in flight and clears the previous error.
func (s *SessionStore) LoginStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = true
	s.errMsg = ""
}

// SignupStart marks a signup as in flight and clears the previous error.
func (s *SessionStore) SignupStart() {
	s.LoginStart()
}

func (s *SessionStore) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	s.errMsg = err.Error()
	return err
}

// Login authenticates email against the directory. The password is accepted
// for form parity and never checked.
func (s *SessionStore) Login(ctx context.Context, email, _ string) (User, error) {
	if err := ValidateEmail(email); err != nil {
		return User{}, s.fail(err)
	}

	s.LoginStart()
	if err := s.wait(ctx); err != nil {
		return User{}, s.fail(err)
	}

	u, ok := s.Registered(ctx, email)
	if !ok {
		return User{}, s.fail(UnknownAccountError{Email: email})
	}

	s.writeMu.Lock()
	s.succeed(u)
	s.persistSession(ctx, u, nil)
	s.writeMu.Unlock()
	s.log.Info("logged in", slog.String("user_id", u.ID))
	return u, nil
}

// Signup registers a new user and signs them in. An existing entry for the same
// email is overwritten.
func (s *SessionStore) Signup(ctx context.Context, in SignupInput) (User, error) {
	if err := in.Validate(); err != nil {
		return User{}, s.fail(err)
	}

	s.SignupStart()
	if err := s.wait(ctx); err != nil {
		return User{}, s.fail(err)
	}

	u := User{
		ID:       s.newID(),
		Email:    in.Email,
		Username: in.Username,
		Name:     in.Username,
	}

	s.writeMu.Lock()
	s.mu.Lock()
	s.registered[u.Email] = u
	s.mu.Unlock()
	dir := s.directory(ctx)

	s.succeed(u)
	s.persistSession(ctx, u, dir)
	s.writeMu.Unlock()
	s.log.Info("signed up", slog.String("user_id", u.ID))
	return u, nil
}

// Logout clears the session and its persisted snapshot. The directory and
// theme survive.
func (s *SessionStore) Logout(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.user = nil
	s.authed = false
	s.pending = false
	s.errMsg = ""
	s.mu.Unlock()

	if err := s.kv.Remove(ctx, storage.KeySession); err != nil {
		s.log.Warn("session snapshot not removed", slog.Any("err", err))
	}
}

// ToggleTheme flips between light and dark and persists the result.
func (s *SessionStore) ToggleTheme(ctx context.Context) Theme {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.theme = s.theme.Toggled()
	t := s.theme
	s.mu.Unlock()

	if err := s.kv.Set(ctx, storage.KeyTheme, string(t)); err != nil {
		s.log.Warn("theme preference not saved", slog.Any("err", err))
	}
	return t
}

// Registered looks up email in the directory.
func (s *SessionStore) Registered(ctx context.Context, email string) (User, bool) {
	u, ok := s.directory(ctx)[email]
	return u, ok
}

func (s *SessionStore) IsRegistered(ctx context.Context, email string) bool {
	_, ok := s.Registered(ctx, email)
	return ok
}

// directory is the stored registered-user map with this run's signups laid
// over it, so accounts survive a failed write until the process exits.
func (s *SessionStore) directory(ctx context.Context) map[string]User {
	dir := s.storedDirectory(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, u := range s.registered {
		dir[email] = u
	}
	return dir
}

// storedDirectory loads the persisted registered-user map fresh on every call.
func (s *SessionStore) storedDirectory(ctx context.Context) map[string]User {
	dir := map[string]User{}
	raw, ok, err := s.kv.Get(ctx, storage.KeyRegisteredUsers)
	if err != nil {
		s.log.Warn("directory unreadable", slog.Any("err", PersistenceReadError{Key: storage.KeyRegisteredUsers, Err: err}))
		return dir
	}
	if !ok {
		return dir
	}
	if err := json.Unmarshal([]byte(raw), &dir); err != nil {
		s.log.Warn("discarding malformed directory", slog.Any("err", PersistenceReadError{Key: storage.KeyRegisteredUsers, Err: err}))
		return map[string]User{}
	}
	if dir == nil {
		dir = map[string]User{}
	}
	return dir
}

func (s *SessionStore) succeed(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	s.authed = true
	s.user = &u
	s.errMsg = ""
}

// persistSession writes the session snapshot, and the directory when dir is non-nil.
func (s *SessionStore) persistSession(ctx context.Context, u User, dir map[string]User) {
	authed := true
	snap, err := json.Marshal(sessionSnapshot{User: &u, IsAuthenticated: &authed})
	if err != nil {
		s.log.Warn("session snapshot not encoded", slog.Any("err", err))
		return
	}
	entries := map[string]string{storage.KeySession: string(snap)}
	if dir != nil {
		raw, err := json.Marshal(dir)
		if err != nil {
			s.log.Warn("directory not encoded", slog.Any("err", err))
			return
		}
		entries[storage.KeyRegisteredUsers] = string(raw)
	}
	if err := s.kv.SetMany(ctx, entries); err != nil {
		s.log.Warn("session not saved; continuing in memory", slog.Any("err", err))
	}
}

func (s *SessionStore) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.New("request timed out")
		}
		return ctx.Err()
	}
}
