// Package app wires configuration, logging, the session store and the UI
// into the Quill editor. It is the composition root.
//
// # Startup
//
//  1. Load ~/.config/quill/config.toml and QUILL_* environment overrides
//  2. Open the rotated JSON log file
//  3. Open the session store (TOML file or SQLite database)
//  4. Build the document registry, session controller and UI host
//  5. Restore the previous session, then open command-line files
//  6. Run the editor until the user quits or the context is cancelled
//
// # Error Handling
//
// Configuration, logging and store failures are fatal and returned from
// Run. Files that cannot be opened are reported in the UI and skipped. A
// session that cannot be persisted on exit is returned as an error after
// the editor has closed.
package app
