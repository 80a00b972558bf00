package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"QUILL_LOG_LEVEL", "QUILL_STATE_BACKEND", "QUILL_STATE_PATH", "QUILL_THEME",
		"LOG_LEVEL", "STATE_BACKEND", "STATE_PATH", "THEME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.StateBackend != BackendTOML {
		t.Fatalf("StateBackend = %q, want %q", cfg.StateBackend, BackendTOML)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if !reflect.DeepEqual(cfg.MarkdownExtensions, defaultExtensions) {
		t.Fatalf("MarkdownExtensions = %v, want %v", cfg.MarkdownExtensions, defaultExtensions)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.StatePath != "" {
		t.Fatalf("StatePath = %q, want empty", cfg.StatePath)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
markdown_extensions = ["MD", " .txt ", ""]
state_backend = "  SQLite "
state_path = "  ~/.quill/state.db  "
log_level = "debug"
theme = "Slate"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := []string{".md", ".txt"}; !reflect.DeepEqual(cfg.MarkdownExtensions, want) {
		t.Fatalf("MarkdownExtensions = %v, want %v", cfg.MarkdownExtensions, want)
	}
	if cfg.StateBackend != BackendSQLite {
		t.Fatalf("StateBackend = %q, want %q", cfg.StateBackend, BackendSQLite)
	}
	if !strings.HasPrefix(cfg.StatePath, home) {
		t.Fatalf("StatePath = %q, want it under HOME %q", cfg.StatePath, home)
	}
	if cfg.LogLevel != "debug" || cfg.Theme != "Slate" {
		t.Fatalf("LogLevel, Theme = %q, %q, want debug, Slate", cfg.LogLevel, cfg.Theme)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)
	t.Setenv("QUILL_LOG_LEVEL", "warn")
	t.Setenv("QUILL_STATE_BACKEND", "sqlite")
	t.Setenv("QUILL_THEME", "Dayfox")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
log_level = "debug"
state_backend = "toml"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.StateBackend != BackendSQLite {
		t.Fatalf("StateBackend = %q, want %q", cfg.StateBackend, BackendSQLite)
	}
	if cfg.Theme != "Dayfox" {
		t.Fatalf("Theme = %q, want %q", cfg.Theme, "Dayfox")
	}
}

func TestLoad_UnknownBackendFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`state_backend = "redis"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "state_backend") {
		t.Fatalf("Load error = %v, want it to mention state_backend", err)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_level = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestFilePatterns(t *testing.T) {
	cfg := Config{MarkdownExtensions: []string{".md", ".markdown"}}
	want := []string{"*.md", "*.markdown"}
	if got := cfg.FilePatterns(); !reflect.DeepEqual(got, want) {
		t.Fatalf("FilePatterns = %v, want %v", got, want)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
