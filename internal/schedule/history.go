package schedule

// DefaultMaxHistory is the number of snapshots kept before the oldest is dropped.
const DefaultMaxHistory = 100

// History is a linear undo/redo stack of schedule snapshots.
// Snapshots are copied on the way in and on the way out, so no caller can
// mutate a stored state.
type History struct {
	snapshots []*Schedule
	cursor    int
	max       int
}

// NewHistory creates an empty history keeping at most max snapshots.
// A max below 1 uses DefaultMaxHistory.
func NewHistory(max int) *History {
	if max < 1 {
		max = DefaultMaxHistory
	}
	return &History{cursor: -1, max: max}
}

// Commit drops every snapshot after the cursor, appends a copy of s and
// moves the cursor to it.
func (h *History) Commit(s *Schedule) {
	h.snapshots = append(h.snapshots[:h.cursor+1], s.Clone())
	if len(h.snapshots) > h.max {
		drop := len(h.snapshots) - h.max
		// Release the dropped snapshots for the collector.
		for i := 0; i < drop; i++ {
			h.snapshots[i] = nil
		}
		h.snapshots = h.snapshots[drop:]
	}
	h.cursor = len(h.snapshots) - 1
}

// Undo moves the cursor back one step and returns that snapshot.
// ok is false when there is nothing to undo.
func (h *History) Undo() (s *Schedule, ok bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return h.snapshots[h.cursor].Clone(), true
}

// Redo moves the cursor forward one step and returns that snapshot.
// ok is false when there is nothing to redo.
func (h *History) Redo() (s *Schedule, ok bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return h.snapshots[h.cursor].Clone(), true
}

// CanUndo returns true if the cursor is past the first snapshot.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo returns true if snapshots exist after the cursor.
func (h *History) CanRedo() bool {
	return h.cursor >= 0 && h.cursor < len(h.snapshots)-1
}

// UndoCount returns how many undo steps are available.
func (h *History) UndoCount() int {
	if h.cursor < 0 {
		return 0
	}
	return h.cursor
}

// RedoCount returns how many redo steps are available.
func (h *History) RedoCount() int {
	if h.cursor < 0 {
		return 0
	}
	return len(h.snapshots) - 1 - h.cursor
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Cursor returns the index of the current snapshot, or -1 when empty.
func (h *History) Cursor() int {
	return h.cursor
}

// Current returns a copy of the snapshot under the cursor.
func (h *History) Current() (*Schedule, bool) {
	if h.cursor < 0 {
		return nil, false
	}
	return h.snapshots[h.cursor].Clone(), true
}
