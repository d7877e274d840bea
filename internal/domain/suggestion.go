package domain

// SuggestionKind discriminates the suggestion variants
type SuggestionKind int

const (
	SuggestionDuplicate SuggestionKind = iota
	SuggestionSimilarNames
	SuggestionSameSession
	SuggestionOldFile
	SuggestionLargeFile
	SuggestionTemporaryFile
)

// String returns a stable name for the suggestion kind
func (k SuggestionKind) String() string {
	switch k {
	case SuggestionDuplicate:
		return "duplicate"
	case SuggestionSimilarNames:
		return "similar-names"
	case SuggestionSameSession:
		return "same-session"
	case SuggestionOldFile:
		return "old-file"
	case SuggestionLargeFile:
		return "large-file"
	case SuggestionTemporaryFile:
		return "temporary-file"
	default:
		return "unknown"
	}
}

// Suggestion is a derived, read-only hint that a file relates to others in a
// specific way. Group kinds (duplicate, similar-names, same-session) carry
// the member IDs including the focused file; the remaining kinds describe
// only the focused file itself.
type Suggestion struct {
	Kind         SuggestionKind
	Message      string
	Hint         string // optional action hint, e.g. "keep newest, bin the rest"
	Members      []FileID
	SharedPrefix string // similar-names only
	Count        int    // group kinds only
}

// IsGroup reports whether the suggestion names a reviewable group of files
func (s Suggestion) IsGroup() bool {
	switch s.Kind {
	case SuggestionDuplicate, SuggestionSimilarNames, SuggestionSameSession:
		return len(s.Members) > 1
	}
	return false
}
