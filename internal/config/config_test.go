package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, k := range []string{"TASKMATE_DB", "TASKMATE_LOG_LEVEL", "TASKMATE_LOG_FORMAT", "TASKMATE_AUTH_DELAY", "TASKMATE_THEME"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	c := Load()

	if c.DBPath != "" {
		t.Errorf("DBPath = %q, want empty", c.DBPath)
	}
	if c.Log.Level != "warn" || c.Log.Format != "text" {
		t.Errorf("log = %+v, want warn/text", c.Log)
	}
	if c.Auth.Delay != 0 {
		t.Errorf("Auth.Delay = %v, want 0", c.Auth.Delay)
	}
	if c.Theme != "" {
		t.Errorf("Theme = %q, want empty", c.Theme)
	}
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("TASKMATE_DB", "/tmp/tm.db")
	t.Setenv("TASKMATE_LOG_LEVEL", "debug")
	t.Setenv("TASKMATE_LOG_FORMAT", "json")
	t.Setenv("TASKMATE_AUTH_DELAY", "250ms")
	t.Setenv("TASKMATE_THEME", " Dark ")

	c := Load()
	if c.DBPath != "/tmp/tm.db" {
		t.Errorf("DBPath = %q", c.DBPath)
	}
	if c.Log.Level != "debug" || c.Log.Format != "json" {
		t.Errorf("log = %+v", c.Log)
	}
	if c.Auth.Delay != 250*time.Millisecond {
		t.Errorf("Auth.Delay = %v, want 250ms", c.Auth.Delay)
	}
	if c.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", c.Theme)
	}
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, "taskmate")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	yaml := "db_path: /data/tasks.db\nlog:\n  level: info\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "taskmate.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := Load()
	if c.DBPath != "/data/tasks.db" {
		t.Errorf("DBPath = %q, want /data/tasks.db", c.DBPath)
	}
	if c.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", c.Log.Level)
	}
	if c.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text default", c.Log.Format)
	}
}

func TestLoad_BadDelayFallsBack(t *testing.T) {
	isolate(t)
	t.Setenv("TASKMATE_DB", "/tmp/keep.db")
	t.Setenv("TASKMATE_AUTH_DELAY", "soon")

	c := Load()
	if c.Auth.Delay != 0 {
		t.Errorf("Auth.Delay = %v, want 0", c.Auth.Delay)
	}
	if c.DBPath != "/tmp/keep.db" {
		t.Errorf("DBPath = %q, want /tmp/keep.db", c.DBPath)
	}
}
