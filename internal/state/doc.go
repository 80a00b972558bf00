// Package state persists the editor session between runs.
//
// # Overview
//
// The Store records which files were open, which one was active, the
// directory last used by a file dialog, and three display toggles. It sits
// on top of a key-value store (see package prefs) and never fails on read:
// anything missing or unreadable falls back to a default.
//
// # Persisted Keys
//
// All keys live under the "state" scope:
//
//	state.file.0 .. state.file.N   open files, in tab order
//	state.activeFile               active file (absent when untitled/none)
//	state.lastDirectory            directory for the next file dialog
//	state.previewVisible           default true
//	state.htmlSourceVisible        default false
//	state.markdownAstVisible       default false
//
// # Load Semantics
//
//	snap := store.Load()
//	→ snap.Paths          = file.0..file.N (up to the first gap)
//	→ snap.ActivePath     = activeFile or ""
//	→ snap.LastDirectory  = lastDirectory if it is an existing directory,
//	                        otherwise the working directory
//	→ snap.Preferences    = stored toggles or their defaults
//
// Load does not check whether the listed files still exist; that is left to
// the session controller, which drops missing files silently.
//
// # Save Semantics
//
//	store.Save([]string{"/a.md", "", "/b.md"}, "")
//	→ file.0 = /a.md, file.1 = /b.md, stale file.2.. removed
//	→ activeFile removed
//
// Untitled documents have no path and are not carried across restarts.
//
// # Preview Type
//
// Preferences.PreviewType collapses the three toggles into the one pane the
// editor shows. Structure view wins over raw output, which wins over the
// rendered preview.
//
// # Concurrency
//
// The Store is used from the UI goroutine only and holds no locks.
package state
