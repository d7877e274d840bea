package ports

import "desksweep/internal/domain"

// FileMover sends files to the system trash. A failure is non-fatal to the
// caller's accounting: the decision stands and the error is only reported.
type FileMover interface {
	Trash(rec domain.FileRecord) error
}

// CloudMover relocates files to remote storage for the cloud decision
type CloudMover interface {
	Relocate(rec domain.FileRecord) error
}
