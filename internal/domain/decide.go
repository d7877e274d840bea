package domain

// BinMode selects what happens to binned files
type BinMode int

const (
	// BinImmediate sends each binned file to the trash as the decision is made
	BinImmediate BinMode = iota
	// BinDeferred collects binned files for review before anything is trashed
	BinDeferred
)

// Apply commits one decision against the file with the given identity. It
// records an undo entry, removes the file from the working list, updates the
// counters and collections, and moves the cursor to the next untriaged file.
//
// The returned records are the files that must be handed to the trash now
// (non-empty only for Bin in immediate mode). Trash I/O is the caller's
// concern; a failed trash request does not affect the accounting here.
func Apply(s *Session, h *UndoHistory, d Decision, id FileID, mode BinMode) ([]FileRecord, bool) {
	cursorBefore := s.Cursor()
	rec, idx, ok := s.Remove(id)
	if !ok {
		return nil, false
	}
	rec.Decision = d
	h.Record(UndoRecord{
		Decision:     d,
		File:         rec,
		CursorBefore: cursorBefore,
		Index:        idx,
	})

	toTrash := settle(s, rec, d, mode)

	// The decided file vacated its slot, so keeping the numeric cursor
	// already points at the next untriaged file. Only clamping is needed.
	s.SetCursor(cursorBefore)
	return toTrash, true
}

// ApplyAll commits one decision against a set of files without per-file
// cursor movement, then settles the cursor once at the end. If the file that
// was current before the batch survives, the cursor follows it; otherwise
// the pre-batch cursor value is kept, clamped to the new visible length.
func ApplyAll(s *Session, h *UndoHistory, d Decision, ids []FileID, mode BinMode) []FileRecord {
	cursorBefore := s.Cursor()
	currentID := FileID("")
	if cur, ok := s.Current(); ok {
		currentID = cur.ID
	}

	var toTrash []FileRecord
	for _, id := range ids {
		rec, idx, ok := s.Remove(id)
		if !ok {
			continue
		}
		rec.Decision = d
		h.Record(UndoRecord{
			Decision:     d,
			File:         rec,
			CursorBefore: cursorBefore,
			Index:        idx,
		})
		toTrash = append(toTrash, settle(s, rec, d, mode)...)
	}

	if i := s.VisibleIndexOf(currentID); i >= 0 {
		s.SetCursor(i)
	} else {
		s.SetCursor(cursorBefore)
	}
	return toTrash
}

// settle applies the counter and collection effects of a committed decision
func settle(s *Session, rec FileRecord, d Decision, mode BinMode) []FileRecord {
	switch d {
	case DecisionKeep, DecisionCloud:
		s.counters.Kept++
	case DecisionBin:
		s.counters.Binned++
		s.counters.ReclaimedBytes += rec.Size
		if mode == BinDeferred {
			s.pendingBin = append(s.pendingBin, rec)
			return nil
		}
		return []FileRecord{rec}
	case DecisionStack:
		s.stacked = append(s.stacked, rec)
	}
	return nil
}

// Undo reverses the most recent decision: the snapshotted file is reinserted
// at its original index when still valid (else at the pre-action cursor, else
// at the tail), the counter effect is rolled back clamped at zero, and the
// cursor is recomputed to point at the restored file when it is visible under
// the active filter. Returns false when the history is empty.
//
// Files already sent to the real trash are only reinstated in the working
// list for re-review; nothing is restored on disk.
func Undo(s *Session, h *UndoHistory) bool {
	e, ok := h.Pop()
	if !ok {
		return false
	}

	rec := e.File
	rec.Decision = DecisionNone

	at := e.Index
	if at < 0 || at > s.Len() {
		at = e.CursorBefore
	}
	s.Reinsert(rec, at)

	switch e.Decision {
	case DecisionKeep, DecisionCloud:
		if s.counters.Kept > 0 {
			s.counters.Kept--
		}
	case DecisionBin:
		if s.counters.Binned > 0 {
			s.counters.Binned--
		}
		s.counters.ReclaimedBytes -= e.File.Size
		if s.counters.ReclaimedBytes < 0 {
			s.counters.ReclaimedBytes = 0
		}
		s.removePendingBin(e.File.ID)
	case DecisionStack:
		s.removeStacked(e.File.ID)
	}

	if i := s.VisibleIndexOf(rec.ID); i >= 0 {
		s.SetCursor(i)
	} else {
		s.SetCursor(e.CursorBefore)
	}
	return true
}

// RestoreFromBin moves a file out of the deferred-bin collection back into
// the working list at the tail, reversing its counter effect. It is the
// restore path for deferred-review mode and does not touch the undo history.
func RestoreFromBin(s *Session, id FileID) bool {
	rec, ok := s.removePendingBin(id)
	if !ok {
		return false
	}
	rec.Decision = DecisionNone
	s.Reinsert(rec, s.Len())
	if s.counters.Binned > 0 {
		s.counters.Binned--
	}
	s.counters.ReclaimedBytes -= rec.Size
	if s.counters.ReclaimedBytes < 0 {
		s.counters.ReclaimedBytes = 0
	}
	return true
}
