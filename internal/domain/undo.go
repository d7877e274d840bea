package domain

// DefaultUndoDepth is the bounded size of the undo log
const DefaultUndoDepth = 50

// UndoRecord captures everything needed to reverse one decision: the kind
// applied, a full snapshot of the file, the cursor before the action, and
// the file's index in the unfiltered working list (-1 if not recoverable).
type UndoRecord struct {
	Decision     Decision
	File         FileRecord
	CursorBefore int
	Index        int
}

// UndoHistory is a bounded log of reversible actions. When the bound is
// exceeded the oldest entry is evicted first.
type UndoHistory struct {
	entries []UndoRecord
	depth   int
}

// NewUndoHistory returns a history bounded to depth entries.
// Non-positive depths fall back to DefaultUndoDepth.
func NewUndoHistory(depth int) *UndoHistory {
	if depth <= 0 {
		depth = DefaultUndoDepth
	}
	return &UndoHistory{depth: depth}
}

// Record pushes an entry, evicting the oldest if the bound is exceeded
func (h *UndoHistory) Record(e UndoRecord) {
	h.entries = append(h.entries, e)
	if len(h.entries) > h.depth {
		h.entries = h.entries[len(h.entries)-h.depth:]
	}
}

// Pop removes and returns the most recent entry
func (h *UndoHistory) Pop() (UndoRecord, bool) {
	if len(h.entries) == 0 {
		return UndoRecord{}, false
	}
	e := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return e, true
}

// Len returns the number of undoable entries
func (h *UndoHistory) Len() int { return len(h.entries) }

// Clear discards all entries
func (h *UndoHistory) Clear() { h.entries = nil }
