// Package session is the top-level document lifecycle controller.
//
// A Controller receives user intents from the host (new, open, save, save
// as, close, close all), mutates the document registry, defers unsaved-change
// decisions to the close workflow, and reads and writes the persisted session
// state.
//
// # Startup
//
//	prefs := controller.Restore()
//
// Restore loads the state snapshot, keeps only the paths that still exist,
// and reopens them with the previously active file selected. If nothing is
// left, a single untitled document is created.
//
// # Shutdown
//
//	done, err := controller.CloseAll()
//
// CloseAll runs the close workflow. When every document has been confirmed
// and closed the open paths (as they were just before closing) and the
// active path are persisted. done reports whether the host may exit; err is
// non-nil only when persisting failed.
//
// # Collaborators
//
// The host supplies blocking prompt, dialog and notification implementations.
// Each call suspends the controller until the user answers; there are no
// timeouts. Save failures are shown through the Notifier and treated like a
// cancellation, so the document stays open and modified.
package session
