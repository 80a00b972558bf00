// Package logtail reads the tail of the editor's log file and renders its
// JSON entries for the log overlay.
//
// # Reading Log Files
//
// Read extracts the last maxLines from a file with a ring buffer, in one
// sequential pass and O(maxLines) memory:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line in file:
//	   - Store line at current index
//	   - Increment index (wrapping at maxLines)
//	   - Track total lines seen
//	3. If total < maxLines:
//	   - Return first 'count' entries from buffer
//	4. If total >= maxLines:
//	   - Return buffer starting from current index (oldest line)
//
// A non-positive maxLines returns the whole file.
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// # Formatting
//
// The logger writes one JSON object per line:
//
//	{"level":"info","timestamp":"2026-01-02T10:11:12.345Z","logger":"session","message":"saved","path":"/a.md"}
//
// Parse decodes a line into an Entry and Format renders it compactly:
//
//	10:11:12 INFO  session: saved path=/a.md
//
// The caller and stacktrace keys are dropped; other fields are appended in
// key order. Lines that are not JSON objects (panics, partial writes) are
// returned unchanged.
//
// # Error Handling
//
// Read returns nil, nil for non-existent files. Other errors (permission
// denied, I/O errors) are returned wrapped. Formatting never fails.
package logtail
