package domain

import (
	"fmt"
	"testing"
)

func TestUndoHistoryDepthEviction(t *testing.T) {
	h := NewUndoHistory(3)

	for i := 0; i < 5; i++ {
		h.Record(UndoRecord{File: FileRecord{ID: FileID(fmt.Sprintf("f%d", i))}})
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	// Pop order is LIFO; the two oldest entries were evicted.
	want := []FileID{"f4", "f3", "f2"}
	for _, id := range want {
		e, ok := h.Pop()
		if !ok || e.File.ID != id {
			t.Errorf("Pop() = %v %v, want %v", e.File.ID, ok, id)
		}
	}
	if _, ok := h.Pop(); ok {
		t.Error("Pop() succeeded on drained history")
	}
}

func TestUndoHistoryZeroDepthUsesDefault(t *testing.T) {
	h := NewUndoHistory(0)
	for i := 0; i < DefaultUndoDepth+10; i++ {
		h.Record(UndoRecord{})
	}
	if h.Len() != DefaultUndoDepth {
		t.Errorf("Len() = %d, want %d", h.Len(), DefaultUndoDepth)
	}
}

func TestUndoHistoryClear(t *testing.T) {
	h := NewUndoHistory(5)
	h.Record(UndoRecord{})
	h.Record(UndoRecord{})
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", h.Len())
	}
}
