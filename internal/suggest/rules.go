// Package suggest implements the suggestion engine: per-file pattern
// detection over a bounded comparison window, and the cancellable, debounced
// background computation that feeds the session's suggestion cache.
package suggest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"desksweep/internal/domain"
)

// Thresholds are the tunable detection parameters
type Thresholds struct {
	OldFileAge        time.Duration
	LargeFileBytes    int64
	SameSessionWindow time.Duration
	SimilarNamesMin   int
}

// DefaultThresholds mirrors the config defaults for standalone use
func DefaultThresholds() Thresholds {
	return Thresholds{
		OldFileAge:        90 * 24 * time.Hour,
		LargeFileBytes:    50 * 1024 * 1024,
		SameSessionWindow: 3 * time.Minute,
		SimilarNamesMin:   3,
	}
}

// Detect evaluates every rule for the focused file against the comparison
// window and returns the resulting suggestions. The window is expected to be
// the first N working-list entries; matches beyond it are deliberately
// missed. Detect is pure and safe to call from any goroutine.
func Detect(focus domain.FileRecord, window []domain.FileRecord, th Thresholds, now time.Time) []domain.Suggestion {
	var out []domain.Suggestion
	if s, ok := detectDuplicates(focus, window); ok {
		out = append(out, s)
	}
	if s, ok := detectSimilarNames(focus, window, th.SimilarNamesMin); ok {
		out = append(out, s)
	}
	if s, ok := detectSameSession(focus, window, th.SameSessionWindow); ok {
		out = append(out, s)
	}
	if s, ok := detectOldFile(focus, th.OldFileAge, now); ok {
		out = append(out, s)
	}
	if s, ok := detectLargeFile(focus, th.LargeFileBytes); ok {
		out = append(out, s)
	}
	if s, ok := detectTemporaryFile(focus); ok {
		out = append(out, s)
	}
	return out
}

func detectDuplicates(focus domain.FileRecord, window []domain.FileRecord) (domain.Suggestion, bool) {
	if focus.Size == 0 || focus.Fingerprint == "" {
		return domain.Suggestion{}, false
	}
	members := []domain.FileID{focus.ID}
	for _, r := range window {
		if r.ID == focus.ID {
			continue
		}
		if r.Size == focus.Size && r.Fingerprint == focus.Fingerprint {
			members = append(members, r.ID)
		}
	}
	if len(members) < 2 {
		return domain.Suggestion{}, false
	}
	return domain.Suggestion{
		Kind:    domain.SuggestionDuplicate,
		Message: fmt.Sprintf("%d identical copies of this file", len(members)),
		Hint:    "keep the newest, bin the rest",
		Members: members,
		Count:   len(members),
	}, true
}

// digitRuns matches runs of digits so numbered sequences and date-stamped
// names normalize to the same stem
var digitRuns = regexp.MustCompile(`[0-9]+`)

var copyMarkers = []string{" copy", " copia", "-copy", "_copy"}

// NormalizeStem reduces a file name to a grouping key: lowercase stem with
// numeric runs, copy markers, and separator noise removed, plus the original
// extension.
func NormalizeStem(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	stem = digitRuns.ReplaceAllString(stem, " ")
	for _, m := range copyMarkers {
		stem = strings.ReplaceAll(stem, m, " ")
	}
	stem = strings.Join(strings.FieldsFunc(stem, func(r rune) bool {
		switch r {
		case ' ', '-', '_', '(', ')', '.', ',':
			return true
		}
		return false
	}), " ")
	return stem + ext
}

func detectSimilarNames(focus domain.FileRecord, window []domain.FileRecord, minGroup int) (domain.Suggestion, bool) {
	key := NormalizeStem(focus.Name)
	if key == strings.ToLower(filepath.Ext(focus.Name)) {
		// Name was nothing but digits and separators; too weak a signal.
		return domain.Suggestion{}, false
	}
	members := []domain.FileID{focus.ID}
	for _, r := range window {
		if r.ID == focus.ID {
			continue
		}
		if NormalizeStem(r.Name) == key {
			members = append(members, r.ID)
		}
	}
	if minGroup < 2 {
		minGroup = 2
	}
	if len(members) < minGroup {
		return domain.Suggestion{}, false
	}
	prefix := strings.TrimSuffix(key, strings.ToLower(filepath.Ext(focus.Name)))
	return domain.Suggestion{
		Kind:         domain.SuggestionSimilarNames,
		Message:      fmt.Sprintf("%d files named like %q", len(members), focus.Name),
		Hint:         "keep the newest few, bin the rest",
		Members:      members,
		SharedPrefix: strings.TrimSpace(prefix),
		Count:        len(members),
	}, true
}

func detectSameSession(focus domain.FileRecord, window []domain.FileRecord, sessionWindow time.Duration) (domain.Suggestion, bool) {
	if focus.CreatedAt.IsZero() {
		return domain.Suggestion{}, false
	}
	members := []domain.FileID{focus.ID}
	for _, r := range window {
		if r.ID == focus.ID || r.CreatedAt.IsZero() {
			continue
		}
		d := focus.CreatedAt.Sub(r.CreatedAt)
		if d < 0 {
			d = -d
		}
		if d <= sessionWindow {
			members = append(members, r.ID)
		}
	}
	// A single neighbour is coincidence; more than one makes a burst.
	if len(members) < 3 {
		return domain.Suggestion{}, false
	}
	return domain.Suggestion{
		Kind:    domain.SuggestionSameSession,
		Message: fmt.Sprintf("%d files created in the same burst", len(members)),
		Hint:    "review the burst together",
		Members: members,
		Count:   len(members),
	}, true
}

func detectOldFile(focus domain.FileRecord, maxAge time.Duration, now time.Time) (domain.Suggestion, bool) {
	if focus.CreatedAt.IsZero() || now.Sub(focus.CreatedAt) <= maxAge {
		return domain.Suggestion{}, false
	}
	days := int(now.Sub(focus.CreatedAt).Hours() / 24)
	return domain.Suggestion{
		Kind:    domain.SuggestionOldFile,
		Message: fmt.Sprintf("Untouched for %d days", days),
		Hint:    "probably safe to bin",
	}, true
}

func detectLargeFile(focus domain.FileRecord, maxSize int64) (domain.Suggestion, bool) {
	if maxSize <= 0 || focus.Size <= maxSize {
		return domain.Suggestion{}, false
	}
	return domain.Suggestion{
		Kind:    domain.SuggestionLargeFile,
		Message: fmt.Sprintf("Takes up %s", FormatBytes(focus.Size)),
		Hint:    "bin or relocate to reclaim space",
	}, true
}

var tempExts = map[string]bool{
	".tmp": true, ".temp": true, ".bak": true, ".old": true, ".cache": true,
	".part": true, ".partial": true, ".crdownload": true, ".download": true,
	".swp": true, ".dmp": true,
}

// IsTemporaryName reports whether a file name matches the transient-file
// heuristic (temp markers, backup and cache suffixes)
func IsTemporaryName(name string) bool {
	name = strings.ToLower(name)
	return tempExts[filepath.Ext(name)] ||
		strings.HasPrefix(name, "~$") ||
		strings.HasSuffix(name, "~") ||
		strings.Contains(name, ".tmp.")
}

func detectTemporaryFile(focus domain.FileRecord) (domain.Suggestion, bool) {
	if !IsTemporaryName(focus.Name) {
		return domain.Suggestion{}, false
	}
	return domain.Suggestion{
		Kind:    domain.SuggestionTemporaryFile,
		Message: "Looks like a temporary or backup file",
		Hint:    "safe to bin",
	}, true
}

// FormatBytes renders a byte count in human-readable form
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
