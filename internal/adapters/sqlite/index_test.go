package sqlite

import (
	"testing"

	"desksweep/internal/domain"
)

func openIndex(t *testing.T) *Index {
	t.Helper()
	idx := NewIndex()
	if err := idx.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestDuplicateGroups(t *testing.T) {
	idx := openIndex(t)

	err := idx.Add(
		domain.FileRecord{ID: "a", Name: "one.jpg", Size: 100, Fingerprint: "x"},
		domain.FileRecord{ID: "b", Name: "two.jpg", Size: 100, Fingerprint: "x"},
		domain.FileRecord{ID: "c", Name: "three.jpg", Size: 100, Fingerprint: "y"},
		domain.FileRecord{ID: "d", Name: "four.jpg", Size: 200, Fingerprint: "x"},
		domain.FileRecord{ID: "e", Name: "five.jpg", Size: 100, Fingerprint: "x"},
	)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	groups, err := idx.DuplicateGroups()
	if err != nil {
		t.Fatalf("DuplicateGroups() error = %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("groups = %v, want one group", groups)
	}
	want := []domain.FileID{"a", "b", "e"}
	if len(groups[0]) != len(want) {
		t.Fatalf("group = %v, want %v", groups[0], want)
	}
	for i, id := range want {
		if groups[0][i] != id {
			t.Errorf("group[%d] = %v, want %v (insertion order)", i, groups[0][i], id)
		}
	}
}

func TestDuplicateGroupsIgnoresEmptyFingerprints(t *testing.T) {
	idx := openIndex(t)

	idx.Add(
		domain.FileRecord{ID: "a", Name: "one.bin", Size: 100, Fingerprint: ""},
		domain.FileRecord{ID: "b", Name: "two.bin", Size: 100, Fingerprint: ""},
	)
	groups, err := idx.DuplicateGroups()
	if err != nil {
		t.Fatalf("DuplicateGroups() error = %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("groups = %v, unread files must not match each other", groups)
	}
}

func TestLargestFiles(t *testing.T) {
	idx := openIndex(t)

	idx.Add(
		domain.FileRecord{ID: "a", Name: "small.txt", Size: 10, Fingerprint: "p"},
		domain.FileRecord{ID: "b", Name: "big.mov", Size: 5000, Fingerprint: "q"},
		domain.FileRecord{ID: "c", Name: "mid.pdf", Size: 300, Fingerprint: "r"},
	)
	got, err := idx.LargestFiles(2)
	if err != nil {
		t.Fatalf("LargestFiles() error = %v", err)
	}
	want := []domain.FileID{"b", "c"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("LargestFiles(2) = %v, want %v", got, want)
	}
}

func TestClear(t *testing.T) {
	idx := openIndex(t)

	idx.Add(domain.FileRecord{ID: "a", Name: "x", Size: 1, Fingerprint: "p"})
	if err := idx.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, err := idx.LargestFiles(10)
	if err != nil {
		t.Fatalf("LargestFiles() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("index not empty after Clear: %v", got)
	}
}
