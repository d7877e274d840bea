package ports

import "desksweep/internal/domain"

// FileSource enumerates a location and yields file records. Implementations
// must exclude hidden and system entries, classify each record's type, and
// read sizes best-effort (zero when unavailable, never fatal).
type FileSource interface {
	Enumerate(location string) ([]domain.FileRecord, error)
}
