package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/quill/internal/config"
	"github.com/five82/quill/internal/logging"
	"github.com/five82/quill/internal/prefs"
	"github.com/five82/quill/internal/registry"
	"github.com/five82/quill/internal/session"
	"github.com/five82/quill/internal/state"
	"github.com/five82/quill/internal/textfile"
	"github.com/five82/quill/internal/ui"
)

// Options configure the Quill application.
type Options struct {
	ConfigPath string   // empty uses default ~/.config/quill/config.toml
	LogLevel   string   // overrides the configured level when set
	Files      []string // opened after the previous session is restored
}

// Run boots the editor until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	log, closeLog, err := logging.New(logging.DefaultConfig(cfg.LogFile, cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	backend, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close state: %w", cerr))
		}
	}()

	log.Info("starting",
		zap.String("state_backend", cfg.StateBackend),
		zap.Strings("extensions", cfg.MarkdownExtensions),
		zap.Int("files", len(opts.Files)),
	)

	host := ui.NewHost(cfg.Theme, log)
	ctrl, err := session.New(session.Options{
		Registry: registry.New(textfile.Files{}, log),
		Store:    state.NewStore(prefs.NewNode(backend, state.Scope)),
		Files:    textfile.Files{},
		Prompter: host,
		Dialogs:  host,
		Notifier: host,
		Filters: []session.Filter{
			{Name: "Markdown Files", Patterns: cfg.FilePatterns()},
			{Name: "All Files", Patterns: []string{"*"}},
		},
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("init session: %w", err)
	}

	// Restore before opening arguments so they land after the restored tabs.
	ctrl.Restore()
	if len(opts.Files) > 0 {
		ctrl.OpenPaths(opts.Files)
	}

	err = ui.Run(ctx, ctrl, ui.Options{
		Host:    host,
		LogFile: cfg.LogFile,
		Theme:   cfg.Theme,
		Logger:  log,
	})
	if err != nil {
		log.Error("exiting with error", zap.Error(err))
		return err
	}
	log.Info("exiting")
	return nil
}

// openBackend opens the configured session store. An empty state path uses
// the backend's default location.
func openBackend(cfg config.Config) (prefs.Backend, error) {
	switch cfg.StateBackend {
	case config.BackendSQLite:
		db, err := prefs.OpenSQLite(cfg.StatePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.BackendTOML, "":
		file, err := prefs.OpenFile(cfg.StatePath)
		if err != nil {
			return nil, err
		}
		return file, nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
	}
}
