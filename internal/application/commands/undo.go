package commands

import (
	"context"

	"desksweep/internal/application"
)

// UndoResult contains the result of an undo
type UndoResult struct {
	Undone  bool
	Message string
}

// UndoCommand reverses the most recent decision. An empty history is a
// normal negative result, not an error.
type UndoCommand struct {
	svc *application.Service
}

// NewUndoCommand creates a new UndoCommand
func NewUndoCommand(svc *application.Service) *UndoCommand {
	return &UndoCommand{svc: svc}
}

// Execute runs the undo command
func (c *UndoCommand) Execute(ctx context.Context) (*UndoResult, error) {
	if !c.svc.Undo() {
		return &UndoResult{Undone: false, Message: "Nothing to undo"}, nil
	}
	return &UndoResult{Undone: true, Message: "Undone"}, nil
}
