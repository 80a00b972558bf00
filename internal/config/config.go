package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// State backends.
const (
	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
)

// Config holds the editor settings.
type Config struct {
	MarkdownExtensions []string
	StateBackend       string
	StatePath          string
	LogFile            string
	LogLevel           string
	Theme              string
}

const (
	defaultConfigPath = "~/.config/quill/config.toml"
	defaultLogFile    = "~/.local/state/quill/quill.log"
	defaultLogLevel   = "info"
	defaultTheme      = "Nightfox"
	envPrefix         = "quill"
)

var defaultExtensions = []string{".md", ".markdown", ".mdown", ".mkd"}

// envOverrides are read from QUILL_* environment variables and win over the
// file.
type envOverrides struct {
	LogLevel     string `envconfig:"LOG_LEVEL"`
	StateBackend string `envconfig:"STATE_BACKEND"`
	StatePath    string `envconfig:"STATE_PATH"`
	Theme        string `envconfig:"THEME"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		MarkdownExtensions: append([]string(nil), defaultExtensions...),
		StateBackend:       BackendTOML,
		LogFile:            mustExpand(defaultLogFile),
		LogLevel:           defaultLogLevel,
		Theme:              defaultTheme,
	}
}

// Load reads the config file at path, or the default location when empty,
// then applies environment overrides. A missing file yields defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := parse(file, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(r io.Reader, cfg *Config) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		MarkdownExtensions []string `toml:"markdown_extensions"`
		StateBackend       string   `toml:"state_backend"`
		StatePath          string   `toml:"state_path"`
		LogFile            string   `toml:"log_file"`
		LogLevel           string   `toml:"log_level"`
		Theme              string   `toml:"theme"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if exts := normalizeExtensions(raw.MarkdownExtensions); len(exts) > 0 {
		cfg.MarkdownExtensions = exts
	}
	if v := strings.TrimSpace(raw.StateBackend); v != "" {
		cfg.StateBackend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.StatePath); v != "" {
		cfg.StatePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = v
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if v := strings.TrimSpace(env.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(env.StateBackend); v != "" {
		cfg.StateBackend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(env.StatePath); v != "" {
		cfg.StatePath = mustExpand(v)
	}
	if v := strings.TrimSpace(env.Theme); v != "" {
		cfg.Theme = v
	}
	return nil
}

func (c Config) validate() error {
	switch c.StateBackend {
	case BackendTOML, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown state_backend %q (want %q or %q)", c.StateBackend, BackendTOML, BackendSQLite)
	}
}

// FilePatterns returns the extensions as glob patterns, e.g. "*.md".
func (c Config) FilePatterns() []string {
	patterns := make([]string, 0, len(c.MarkdownExtensions))
	for _, ext := range c.MarkdownExtensions {
		patterns = append(patterns, "*"+ext)
	}
	return patterns
}

func normalizeExtensions(exts []string) []string {
	var out []string
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, strings.ToLower(e))
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
