// Package config handles loading Quill's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/quill/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. Fields that are missing or empty in the file keep their defaults
//  5. QUILL_* environment variables override the file
//
// # Default Values
//
//   - Config file: ~/.config/quill/config.toml
//   - Markdown extensions: .md, .markdown, .mdown, .mkd
//   - State backend: toml (~/.local/state/quill/session.toml)
//   - Log file: ~/.local/state/quill/quill.log
//   - Log level: info
//   - Theme: Nightfox
//
// # TOML Format
//
//	markdown_extensions = [".md", ".markdown"]
//	state_backend = "sqlite"          # or "toml"
//	state_path = "~/.local/state/quill/session.db"
//	log_file = "~/.local/state/quill/quill.log"
//	log_level = "debug"
//	theme = "Dayfox"
//
// Extensions are lowercased and get a leading dot when it is missing. Tilde
// expansion is performed for state_path and log_file.
//
// # Environment
//
//   - QUILL_LOG_LEVEL
//   - QUILL_STATE_BACKEND
//   - QUILL_STATE_PATH
//   - QUILL_THEME
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - An unknown state_backend
//
// Missing config files are NOT an error. Quill works out of the box without
// configuration.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return fmt.Errorf("load config: %w", err)
//	}
//	filters := cfg.FilePatterns() // ["*.md", "*.markdown", ...]
package config
