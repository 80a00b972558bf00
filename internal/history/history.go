// Package history keeps the undo/redo history of a single document together
// with the "mark" that records the last loaded or saved position.
package history

// DefaultLimit is the number of entries kept when New is given a non-positive limit.
const DefaultLimit = 500

const noMark = -1

// History is a bounded stack of content snapshots with a cursor.
// The zero value is not usable; construct it with New.
type History struct {
	entries []string
	pos     int
	mark    int
	limit   int
}

// New returns a history holding content as its only entry, marked.
func New(content string, limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{
		entries: []string{content},
		limit:   limit,
	}
}

// Current returns the content at the cursor.
func (h *History) Current() string {
	return h.entries[h.pos]
}

// Record appends content after the cursor, discarding any redo branch.
// It reports false when content equals the current entry.
func (h *History) Record(content string) bool {
	if content == h.entries[h.pos] {
		return false
	}
	if h.mark > h.pos {
		h.mark = noMark
	}
	h.entries = append(h.entries[:h.pos+1], content)
	h.pos++

	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]string(nil), h.entries[over:]...)
		h.pos -= over
		if h.mark != noMark {
			h.mark -= over
			if h.mark < 0 {
				h.mark = noMark
			}
		}
	}
	return true
}

// Undo moves the cursor back one entry.
func (h *History) Undo() (string, bool) {
	if !h.UndoAvailable() {
		return h.Current(), false
	}
	h.pos--
	return h.Current(), true
}

// Redo moves the cursor forward one entry.
func (h *History) Redo() (string, bool) {
	if !h.RedoAvailable() {
		return h.Current(), false
	}
	h.pos++
	return h.Current(), true
}

// Mark records the cursor as the saved position.
func (h *History) Mark() {
	h.mark = h.pos
}

// AtMark reports whether the cursor sits on the saved position.
func (h *History) AtMark() bool {
	return h.mark == h.pos
}

// UndoAvailable reports whether Undo would move the cursor.
func (h *History) UndoAvailable() bool {
	return h.pos > 0
}

// RedoAvailable reports whether Redo would move the cursor.
func (h *History) RedoAvailable() bool {
	return h.pos < len(h.entries)-1
}

// Reset forgets all entries and marks content as the saved position.
func (h *History) Reset(content string) {
	h.entries = []string{content}
	h.pos = 0
	h.mark = 0
}

// Len returns the number of entries held.
func (h *History) Len() int {
	return len(h.entries)
}
