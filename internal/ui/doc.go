// Package ui provides the terminal editor for Quill.
//
// # Architecture Overview
//
// The interface is built with Bubble Tea. The editor screen (Model) shows
// one tab per open document, a textarea bound to the active document, an
// optional preview pane and a status bar. It never talks to the disk
// itself: every operation goes through session.Controller.
//
// Operations that may need a blocking answer from the user (open, save,
// save as, close, quit) do not run inside the editor program. The editor
// exits with an intent set, Run performs it through the controller, and the
// editor program is started again. While the intent runs, Host shows each
// prompt or file dialog as its own short-lived program and returns the
// answer synchronously.
//
// # Package Structure
//
//   - ui.go: Options and the Run loop
//   - editor.go: editor Model, key handling and intents
//   - view.go: layout and rendering of tabs, panes, status bar and log overlay
//   - host.go: Host, the prompt and dialog surface for the controller
//   - prompts.go: Yes/No/Cancel prompt and error alert models
//   - dialogs.go: open and save-as dialog models
//   - files.go: directory listing for the open dialog
//   - help.go: help overlay
//   - keys.go: key bindings
//   - theme.go: color themes and styles
//
// # Key Bindings
//
//   - ctrl+n: New document
//   - ctrl+o: Open files
//   - ctrl+s: Save, alt+s: Save all, ctrl+e: Save as
//   - ctrl+w: Close tab
//   - ctrl+z / ctrl+y: Undo / Redo
//   - alt+← / alt+→: Previous / next tab
//   - ctrl+p, ctrl+r, ctrl+t: Preview, raw output and structure panes
//   - ctrl+l: Log overlay
//   - F2: Cycle theme, F1: Help
//   - ctrl+q or ctrl+c: Quit
package ui
