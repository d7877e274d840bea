package commands

import (
	"context"
	"fmt"

	"desksweep/internal/application"
	"desksweep/internal/domain"
)

// RestoreFromBinResult contains the result of a pending-bin restore
type RestoreFromBinResult struct {
	Message string
}

// RestoreFromBinCommand reinstates a pending-bin file in the working list
// (deferred-review mode)
type RestoreFromBinCommand struct {
	svc *application.Service
	ID  domain.FileID
}

// NewRestoreFromBinCommand creates a new RestoreFromBinCommand
func NewRestoreFromBinCommand(svc *application.Service, id domain.FileID) *RestoreFromBinCommand {
	return &RestoreFromBinCommand{svc: svc, ID: id}
}

// Validate checks the command arguments
func (c *RestoreFromBinCommand) Validate() error {
	if c.ID == "" {
		return &application.ValidationError{
			Field:   "id",
			Message: "file id is required",
		}
	}
	return nil
}

// Execute runs the restore command
func (c *RestoreFromBinCommand) Execute(ctx context.Context) (*RestoreFromBinResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !c.svc.RestoreFromBin(c.ID) {
		return nil, application.ErrNotFound
	}
	return &RestoreFromBinResult{Message: "Restored to working list"}, nil
}

// CommitBinResult contains the result of flushing the pending bin
type CommitBinResult struct {
	Trashed int
	Message string
}

// CommitBinCommand flushes the deferred-bin collection through the mover
type CommitBinCommand struct {
	svc *application.Service
}

// NewCommitBinCommand creates a new CommitBinCommand
func NewCommitBinCommand(svc *application.Service) *CommitBinCommand {
	return &CommitBinCommand{svc: svc}
}

// Execute runs the commit command
func (c *CommitBinCommand) Execute(ctx context.Context) (*CommitBinResult, error) {
	n := c.svc.CommitBin()
	return &CommitBinResult{
		Trashed: n,
		Message: fmt.Sprintf("Sent %d files to the trash", n),
	}, nil
}
