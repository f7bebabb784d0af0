package naviri

// History is a browser-like navigation history with a current position.
//
// Entries before the current one are reachable with Back, entries after it
// with Forward. Add discards everything after the current entry, the same
// way a browser drops forward history on a new navigation. When maxSize is
// positive the oldest entries are dropped to keep the history bounded.
type History[T any] struct {
	entries []T
	current int
	maxSize int
}

// NewHistory creates an empty history holding at most maxSize entries (0 = unbounded).
func NewHistory[T any](maxSize int) *History[T] {
	return &History[T]{current: -1, maxSize: maxSize}
}

// Add stores entry after the current one and makes it current.
func (h *History[T]) Add(entry T) {
	h.current++
	h.entries = append(h.entries[:h.current], entry)
	h.trim()
}

func (h *History[T]) trim() {
	if h.maxSize <= 0 || len(h.entries) <= h.maxSize {
		return
	}
	// keep the most recent entries
	drop := len(h.entries) - h.maxSize
	h.entries = append([]T(nil), h.entries[drop:]...)
	h.current -= drop
}

// Current returns the current entry.
func (h *History[T]) Current() (T, bool) {
	if h.current < 0 || h.current >= len(h.entries) {
		var zero T
		return zero, false
	}
	return h.entries[h.current], true
}

// Update replaces the current entry. It is a no-op on an empty history.
func (h *History[T]) Update(entry T) {
	if h.current < 0 || h.current >= len(h.entries) {
		return
	}
	h.entries[h.current] = entry
}

// Back moves one entry back and returns it. At the beginning nothing moves.
func (h *History[T]) Back() (T, bool) {
	if h.AtBeginning() {
		var zero T
		return zero, false
	}
	h.current--
	return h.entries[h.current], true
}

// Forward moves one entry forward and returns it. At the end nothing moves.
func (h *History[T]) Forward() (T, bool) {
	if h.AtEnd() {
		var zero T
		return zero, false
	}
	h.current++
	return h.entries[h.current], true
}

// AtBeginning reports whether Back would do nothing.
func (h *History[T]) AtBeginning() bool { return h.current <= 0 }

// AtEnd reports whether Forward would do nothing.
func (h *History[T]) AtEnd() bool { return h.current >= len(h.entries)-1 }

// Len returns the number of entries.
func (h *History[T]) Len() int { return len(h.entries) }
