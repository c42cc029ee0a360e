// Package nav tracks where the user has been: the unbounded back/forward
// stack and the capped recent-locations store persisted across restarts.
package nav

// History is the back/forward path stack. The cursor always points at the
// current entry; pushing a new path discards any forward branch beyond it.
type History struct {
	entries []string
	cursor  int
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{cursor: -1}
}

// NavigateTo records a navigation. Re-navigating to the current path is a
// no-op so the stack never holds two consecutive identical entries.
func (h *History) NavigateTo(path string) {
	if h.cursor >= 0 && h.entries[h.cursor] == path {
		return
	}

	h.entries = append(h.entries[:h.cursor+1], path)
	h.cursor = len(h.entries) - 1
}

// Back moves the cursor one entry back, reporting whether it moved
func (h *History) Back() bool {
	if !h.CanGoBack() {
		return false
	}
	h.cursor--
	return true
}

// Forward moves the cursor one entry forward, reporting whether it moved
func (h *History) Forward() bool {
	if !h.CanGoForward() {
		return false
	}
	h.cursor++
	return true
}

// CanGoBack reports whether an earlier entry exists
func (h *History) CanGoBack() bool {
	return h.cursor > 0
}

// CanGoForward reports whether a forward branch exists
func (h *History) CanGoForward() bool {
	return h.cursor >= 0 && h.cursor < len(h.entries)-1
}

// Current returns the path at the cursor, or "" when empty
func (h *History) Current() string {
	if h.cursor < 0 {
		return ""
	}
	return h.entries[h.cursor]
}

// Len returns the number of recorded entries
func (h *History) Len() int {
	return len(h.entries)
}

// Snapshot returns a copy of the entries and the cursor for persistence
func (h *History) Snapshot() ([]string, int) {
	entries := make([]string, len(h.entries))
	copy(entries, h.entries)
	return entries, h.cursor
}

// Restore replaces the stack from a persisted snapshot. An out-of-range
// cursor is clamped so the invariant 0 <= cursor < len holds.
func (h *History) Restore(entries []string, cursor int) {
	h.entries = make([]string, len(entries))
	copy(h.entries, entries)

	if len(h.entries) == 0 {
		h.cursor = -1
		return
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(h.entries)-1 {
		cursor = len(h.entries) - 1
	}
	h.cursor = cursor
}
