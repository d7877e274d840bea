// Package cloud is a placeholder ports.CloudMover. Relocation is accepted
// and logged; the actual upload backend is configured elsewhere.
package cloud

import (
	"desksweep/internal/debug"
	"desksweep/internal/domain"
)

// Mover accepts cloud-relocate requests
type Mover struct{}

// NewMover creates a cloud mover stub
func NewMover() *Mover { return &Mover{} }

// Relocate acknowledges the request without moving bytes
func (m *Mover) Relocate(rec domain.FileRecord) error {
	debug.Log(debug.TRASH, "cloud relocate requested for %s", rec.Path)
	return nil
}
