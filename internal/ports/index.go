package ports

import "desksweep/internal/domain"

// FingerprintIndex is a queryable index over (size, fingerprint) pairs for
// whole-set duplicate grouping, as used by the batch report and plan
// commands. It holds session-local data only.
type FingerprintIndex interface {
	Open() error
	Close() error
	Add(recs ...domain.FileRecord) error
	// DuplicateGroups returns the identities of files sharing a size and a
	// non-empty fingerprint with at least one other file, grouped, each
	// group in insertion order.
	DuplicateGroups() ([][]domain.FileID, error)
	// LargestFiles returns up to n identities ordered by size descending
	LargestFiles(n int) ([]domain.FileID, error)
	Clear() error
}
