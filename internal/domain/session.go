package domain

// Counters tracks session totals. They increase on decisions and decrease,
// clamped at zero, on matching undos.
type Counters struct {
	Kept           int
	Binned         int
	ReclaimedBytes int64
}

// Session owns the working list of untriaged files, the traversal cursor,
// the optional type filter, the per-file suggestion cache, and the pending
// bin / stacked collections. All state is memory-resident; a Session must be
// mutated from a single goroutine.
type Session struct {
	files       []FileRecord
	filter      *FileType
	cursor      int
	loaded      int // size of the initial load, for conservation checks
	counters    Counters
	pendingBin  []FileRecord
	stacked     []FileRecord
	suggestions map[FileID][]Suggestion
}

// NewSession returns an empty session
func NewSession() *Session {
	return &Session{suggestions: make(map[FileID][]Suggestion)}
}

// Load replaces the working list with records, resets the cursor and filter,
// clears the suggestion cache and collections, and zeroes the counters.
func (s *Session) Load(records []FileRecord) {
	s.files = append([]FileRecord(nil), records...)
	s.filter = nil
	s.cursor = 0
	s.loaded = len(records)
	s.counters = Counters{}
	s.pendingBin = nil
	s.stacked = nil
	s.suggestions = make(map[FileID][]Suggestion)
}

// LoadedCount returns the size of the initial load
func (s *Session) LoadedCount() int { return s.loaded }

// Len returns the current working-list length
func (s *Session) Len() int { return len(s.files) }

// Files returns the working list in insertion order
func (s *Session) Files() []FileRecord {
	return append([]FileRecord(nil), s.files...)
}

// Window returns the first n working-list entries (the suggestion
// comparison window)
func (s *Session) Window(n int) []FileRecord {
	if n > len(s.files) {
		n = len(s.files)
	}
	return append([]FileRecord(nil), s.files[:n]...)
}

// SetFilter restricts the visible sequence to one file type and resets the
// cursor to the start
func (s *Session) SetFilter(t FileType) {
	ft := t
	s.filter = &ft
	s.cursor = 0
}

// ClearFilter removes the active type filter and resets the cursor
func (s *Session) ClearFilter() {
	s.filter = nil
	s.cursor = 0
}

// Filter returns the active type filter, if any
func (s *Session) Filter() (FileType, bool) {
	if s.filter == nil {
		return FileTypeOther, false
	}
	return *s.filter, true
}

func (s *Session) matches(r FileRecord) bool {
	return s.filter == nil || r.Type == *s.filter
}

// Visible returns the filtered working list, preserving insertion order
func (s *Session) Visible() []FileRecord {
	if s.filter == nil {
		return s.Files()
	}
	var out []FileRecord
	for _, r := range s.files {
		if s.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// VisibleLen returns the length of the visible sequence
func (s *Session) VisibleLen() int {
	if s.filter == nil {
		return len(s.files)
	}
	n := 0
	for _, r := range s.files {
		if s.matches(r) {
			n++
		}
	}
	return n
}

// Cursor returns the cursor position within the visible sequence.
// Cursor == VisibleLen means the session is finished.
func (s *Session) Cursor() int { return s.cursor }

// SetCursor moves the cursor, clamped to [0, VisibleLen]
func (s *Session) SetCursor(i int) {
	if i < 0 {
		i = 0
	}
	if n := s.VisibleLen(); i > n {
		i = n
	}
	s.cursor = i
}

// Advance increments the cursor by one, clamped so it never exceeds the
// visible length
func (s *Session) Advance() { s.SetCursor(s.cursor + 1) }

// Finished reports whether the cursor has passed the last visible file
func (s *Session) Finished() bool { return s.cursor >= s.VisibleLen() }

// Current returns the record at the cursor within the visible sequence
func (s *Session) Current() (FileRecord, bool) {
	i := 0
	for _, r := range s.files {
		if !s.matches(r) {
			continue
		}
		if i == s.cursor {
			return r, true
		}
		i++
	}
	return FileRecord{}, false
}

// IndexOf returns the record's index in the unfiltered working list, or -1
func (s *Session) IndexOf(id FileID) int {
	for i, r := range s.files {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// VisibleIndexOf returns the record's index in the visible sequence, or -1
func (s *Session) VisibleIndexOf(id FileID) int {
	i := 0
	for _, r := range s.files {
		if !s.matches(r) {
			continue
		}
		if r.ID == id {
			return i
		}
		i++
	}
	return -1
}

// Get returns the working-list record with the given identity
func (s *Session) Get(id FileID) (FileRecord, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.files[i], true
	}
	return FileRecord{}, false
}

// Contains reports whether the working list holds the given identity
func (s *Session) Contains(id FileID) bool { return s.IndexOf(id) >= 0 }

// Remove takes the record with the given identity out of the working list,
// regardless of the active filter, and drops its suggestion cache entry.
// It returns the removed record and its prior unfiltered index.
func (s *Session) Remove(id FileID) (FileRecord, int, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return FileRecord{}, -1, false
	}
	rec := s.files[i]
	s.files = append(s.files[:i], s.files[i+1:]...)
	delete(s.suggestions, id)
	return rec, i, true
}

// Reinsert puts a previously removed record back into the working list at
// the given index if valid, else at the tail
func (s *Session) Reinsert(rec FileRecord, at int) {
	if at < 0 || at > len(s.files) {
		at = len(s.files)
	}
	s.files = append(s.files, FileRecord{})
	copy(s.files[at+1:], s.files[at:])
	s.files[at] = rec
}

// Counters returns the current session totals
func (s *Session) Counters() Counters { return s.counters }

// PendingBin returns the deferred-bin collection
func (s *Session) PendingBin() []FileRecord {
	return append([]FileRecord(nil), s.pendingBin...)
}

// Stacked returns the set-aside collection
func (s *Session) Stacked() []FileRecord {
	return append([]FileRecord(nil), s.stacked...)
}

// TakePendingBin empties and returns the deferred-bin collection
func (s *Session) TakePendingBin() []FileRecord {
	out := s.pendingBin
	s.pendingBin = nil
	return out
}

func (s *Session) removePendingBin(id FileID) (FileRecord, bool) {
	for i, r := range s.pendingBin {
		if r.ID == id {
			s.pendingBin = append(s.pendingBin[:i], s.pendingBin[i+1:]...)
			return r, true
		}
	}
	return FileRecord{}, false
}

func (s *Session) removeStacked(id FileID) {
	for i, r := range s.stacked {
		if r.ID == id {
			s.stacked = append(s.stacked[:i], s.stacked[i+1:]...)
			return
		}
	}
}

// SetSuggestions caches the computed suggestion list for a file still in
// the working list. Results for removed files are dropped.
func (s *Session) SetSuggestions(id FileID, sugs []Suggestion) bool {
	if !s.Contains(id) {
		return false
	}
	s.suggestions[id] = sugs
	return true
}

// SuggestionsFor returns the cached suggestion list for a file
func (s *Session) SuggestionsFor(id FileID) ([]Suggestion, bool) {
	sugs, ok := s.suggestions[id]
	return sugs, ok
}

// CachedSuggestionIDs returns the identities with cached suggestions
func (s *Session) CachedSuggestionIDs() []FileID {
	out := make([]FileID, 0, len(s.suggestions))
	for id := range s.suggestions {
		out = append(out, id)
	}
	return out
}
