package suggest

import (
	"testing"
	"time"

	"desksweep/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func rec(id, name string, size int64, fingerprint string, created time.Time) domain.FileRecord {
	return domain.FileRecord{
		ID:          domain.FileID(id),
		Name:        name,
		Size:        size,
		Type:        domain.ClassifyName(name),
		Fingerprint: fingerprint,
		CreatedAt:   created,
	}
}

func kinds(sugs []domain.Suggestion) map[domain.SuggestionKind]domain.Suggestion {
	out := make(map[domain.SuggestionKind]domain.Suggestion, len(sugs))
	for _, s := range sugs {
		out[s.Kind] = s
	}
	return out
}

func TestDetectDuplicates(t *testing.T) {
	focus := rec("a", "photo.jpg", 1000, "abc", testNow)
	window := []domain.FileRecord{
		focus,
		rec("b", "photo copy.jpg", 1000, "abc", testNow),
		rec("c", "other.jpg", 1000, "xyz", testNow), // same size, different content
		rec("d", "photo.jpg", 900, "abc", testNow),  // same print, different size
	}

	sugs := Detect(focus, window, DefaultThresholds(), testNow)
	dup, ok := kinds(sugs)[domain.SuggestionDuplicate]
	if !ok {
		t.Fatal("no duplicate suggestion")
	}
	if dup.Count != 2 {
		t.Errorf("Count = %d, want 2", dup.Count)
	}
	if dup.Members[0] != "a" {
		t.Errorf("Members[0] = %v, want the focused file", dup.Members[0])
	}
}

func TestDetectDuplicatesSkipsEmptyAndUnread(t *testing.T) {
	tests := []struct {
		name  string
		focus domain.FileRecord
	}{
		{"zero size", rec("a", "empty.txt", 0, "abc", testNow)},
		{"no fingerprint", rec("a", "big.iso", 1000, "", testNow)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := []domain.FileRecord{tt.focus, tt.focus}
			window[1].ID = "b"
			if _, ok := detectDuplicates(tt.focus, window); ok {
				t.Error("duplicate suggestion from an unverifiable file")
			}
		})
	}
}

func TestNormalizeStem(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"numbered screenshot", "Screenshot 2025-06-01 at 10.23.45.png", "screenshot at.png"},
		{"other screenshot same stem", "Screenshot 2025-06-02 at 11.00.01.png", "screenshot at.png"},
		{"copy marker", "report copy.pdf", "report.pdf"},
		{"underscore copy marker", "report_copy.pdf", "report.pdf"},
		{"parenthesised counter", "invoice (2).pdf", "invoice.pdf"},
		{"plain name", "notes.md", "notes.md"},
		{"all digits", "20250601.jpg", ".jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeStem(tt.in); got != tt.want {
				t.Errorf("NormalizeStem(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetectSimilarNames(t *testing.T) {
	focus := rec("a", "Screenshot 2025-06-01 at 10.23.45.png", 10, "p1", testNow)
	window := []domain.FileRecord{
		focus,
		rec("b", "Screenshot 2025-06-02 at 11.00.01.png", 20, "p2", testNow),
		rec("c", "Screenshot 2025-06-03 at 09.15.30.png", 30, "p3", testNow),
		rec("d", "holiday.png", 40, "p4", testNow),
	}

	s, ok := detectSimilarNames(focus, window, 3)
	if !ok {
		t.Fatal("no similar-names suggestion")
	}
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.SharedPrefix != "screenshot at" {
		t.Errorf("SharedPrefix = %q, want %q", s.SharedPrefix, "screenshot at")
	}

	// Two matches is below the configured minimum of 3.
	if _, ok := detectSimilarNames(focus, window[:2], 3); ok {
		t.Error("suggestion below the minimum group size")
	}
}

func TestDetectSimilarNamesRejectsAllDigitStems(t *testing.T) {
	focus := rec("a", "20250601.jpg", 10, "p1", testNow)
	window := []domain.FileRecord{
		focus,
		rec("b", "20250602.jpg", 20, "p2", testNow),
		rec("c", "20250603.jpg", 30, "p3", testNow),
	}
	if _, ok := detectSimilarNames(focus, window, 3); ok {
		t.Error("all-digit stems are too weak a signal to group on")
	}
}

func TestDetectSameSession(t *testing.T) {
	base := testNow
	focus := rec("a", "IMG_1.jpg", 10, "p1", base)
	window := []domain.FileRecord{
		focus,
		rec("b", "IMG_2.jpg", 10, "p2", base.Add(45*time.Second)),
		rec("c", "IMG_3.jpg", 10, "p3", base.Add(2*time.Minute)),
		rec("d", "IMG_4.jpg", 10, "p4", base.Add(20*time.Minute)), // outside the window
	}

	s, ok := detectSameSession(focus, window, 3*time.Minute)
	if !ok {
		t.Fatal("no same-session suggestion")
	}
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}

	// One neighbour is coincidence, not a burst.
	if _, ok := detectSameSession(focus, window[:2], 3*time.Minute); ok {
		t.Error("burst suggested from a single neighbour")
	}
}

func TestDetectOldAndLarge(t *testing.T) {
	th := DefaultThresholds()

	old := rec("a", "ancient.txt", 10, "p", testNow.AddDate(0, -6, 0))
	if _, ok := detectOldFile(old, th.OldFileAge, testNow); !ok {
		t.Error("six-month-old file not flagged as old")
	}
	fresh := rec("b", "new.txt", 10, "p", testNow.Add(-time.Hour))
	if _, ok := detectOldFile(fresh, th.OldFileAge, testNow); ok {
		t.Error("fresh file flagged as old")
	}
	undated := rec("c", "nodate.txt", 10, "p", time.Time{})
	if _, ok := detectOldFile(undated, th.OldFileAge, testNow); ok {
		t.Error("file without a creation time flagged as old")
	}

	big := rec("d", "video.mov", 200*1024*1024, "p", testNow)
	if _, ok := detectLargeFile(big, th.LargeFileBytes); !ok {
		t.Error("200MB file not flagged as large")
	}
	small := rec("e", "note.txt", 4096, "p", testNow)
	if _, ok := detectLargeFile(small, th.LargeFileBytes); ok {
		t.Error("4KB file flagged as large")
	}
}

func TestIsTemporaryName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"download.crdownload", true},
		{"backup.bak", true},
		{"~$report.docx", true},
		{"notes.txt~", true},
		{"data.tmp.json", true},
		{"report.pdf", false},
		{"archive.tar.gz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTemporaryName(tt.name); got != tt.want {
				t.Errorf("IsTemporaryName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDetectRespectsWindowBound(t *testing.T) {
	focus := rec("a", "dup.bin", 500, "same", testNow)
	inside := rec("b", "dup2.bin", 500, "same", testNow)
	outside := rec("c", "dup3.bin", 500, "same", testNow)

	window := []domain.FileRecord{focus, inside}
	sugs := Detect(focus, window, DefaultThresholds(), testNow)
	dup := kinds(sugs)[domain.SuggestionDuplicate]
	for _, m := range dup.Members {
		if m == outside.ID {
			t.Error("match found beyond the comparison window")
		}
	}
	if dup.Count != 2 {
		t.Errorf("Count = %d, want 2 (window-bounded)", dup.Count)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
