// Package trash implements ports.FileMover against the system trash, so a
// binned file can still be rescued outside the app.
package trash

import (
	"desksweep/internal/debug"
	"desksweep/internal/domain"
)

// Mover sends files to the platform trash
type Mover struct{}

// NewMover creates a trash-backed file mover
func NewMover() *Mover { return &Mover{} }

// Trash moves the file into the system trash. The caller treats a failure
// as non-fatal to its accounting.
func (m *Mover) Trash(rec domain.FileRecord) error {
	debug.Log(debug.TRASH, "trashing %s", rec.Path)
	return moveToTrash(rec.Path)
}

// Available reports whether trash functionality works on this platform
func Available() bool { return isAvailable() }
