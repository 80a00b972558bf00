package app

import (
	"path/filepath"
	"testing"

	"github.com/five82/quill/internal/config"
	"github.com/five82/quill/internal/prefs"
)

func TestOpenBackend_TOML(t *testing.T) {
	cfg := config.Default()
	cfg.StatePath = filepath.Join(t.TempDir(), "session.toml")

	backend, err := openBackend(cfg)
	if err != nil {
		t.Fatalf("openBackend: %v", err)
	}
	defer backend.Close()

	if _, ok := backend.(*prefs.File); !ok {
		t.Fatalf("backend = %T, want *prefs.File", backend)
	}
	if err := backend.Put("k", "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}
}

func TestOpenBackend_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.StateBackend = config.BackendSQLite
	cfg.StatePath = filepath.Join(t.TempDir(), "session.db")

	backend, err := openBackend(cfg)
	if err != nil {
		t.Fatalf("openBackend: %v", err)
	}
	defer backend.Close()

	if _, ok := backend.(*prefs.SQLite); !ok {
		t.Fatalf("backend = %T, want *prefs.SQLite", backend)
	}
	if err := backend.Put("k", "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got, ok := backend.Get("k"); !ok || got != "v" {
		t.Fatalf("Get = %q, %v; want v, true", got, ok)
	}
}

func TestOpenBackend_Unknown(t *testing.T) {
	cfg := config.Default()
	cfg.StateBackend = "etcd"

	if _, err := openBackend(cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
