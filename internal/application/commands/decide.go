package commands

import (
	"context"
	"fmt"

	"desksweep/internal/application"
	"desksweep/internal/domain"
)

// DecideResult contains the result of a decision
type DecideResult struct {
	Decision domain.Decision
	File     string
	Message  string
}

// DecideCommand applies a decision to the file currently at the cursor
type DecideCommand struct {
	svc  *application.Service
	Kind string
}

// NewDecideCommand creates a new DecideCommand
func NewDecideCommand(svc *application.Service, kind string) *DecideCommand {
	return &DecideCommand{svc: svc, Kind: kind}
}

// Validate checks the command arguments
func (c *DecideCommand) Validate() error {
	if c.Kind == "" {
		return &application.ValidationError{
			Field:   "kind",
			Message: "decision kind is required",
		}
	}
	if _, ok := domain.ParseDecision(c.Kind); !ok {
		return &application.ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown decision: %s (want keep, bin, stack, or cloud)", c.Kind),
		}
	}
	return nil
}

// Execute runs the decide command
func (c *DecideCommand) Execute(ctx context.Context) (*DecideResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	d, _ := domain.ParseDecision(c.Kind)

	rec, ok := c.svc.Current()
	if !ok {
		return nil, application.ErrSessionDone
	}
	if err := c.svc.Decide(d); err != nil {
		return nil, err
	}
	return &DecideResult{
		Decision: d,
		File:     rec.Name,
		Message:  fmt.Sprintf("%s: %s", d, rec.Name),
	}, nil
}

// DecideBulkResult contains the result of a bulk decision
type DecideBulkResult struct {
	Decision domain.Decision
	Applied  int
	Message  string
}

// DecideBulkCommand applies one decision to an arbitrary set of files,
// advancing the cursor once at the end
type DecideBulkCommand struct {
	svc  *application.Service
	Kind string
	IDs  []domain.FileID
}

// NewDecideBulkCommand creates a new DecideBulkCommand
func NewDecideBulkCommand(svc *application.Service, kind string, ids []domain.FileID) *DecideBulkCommand {
	return &DecideBulkCommand{svc: svc, Kind: kind, IDs: ids}
}

// Validate checks the command arguments
func (c *DecideBulkCommand) Validate() error {
	if _, ok := domain.ParseDecision(c.Kind); !ok {
		return &application.ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown decision: %s", c.Kind),
		}
	}
	if len(c.IDs) == 0 {
		return &application.ValidationError{
			Field:   "ids",
			Message: "at least one file id is required",
		}
	}
	return nil
}

// Execute runs the bulk decide command
func (c *DecideBulkCommand) Execute(ctx context.Context) (*DecideBulkResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	d, _ := domain.ParseDecision(c.Kind)

	before := c.svc.Session().Len()
	c.svc.DecideBulk(d, c.IDs)
	applied := before - c.svc.Session().Len()

	return &DecideBulkResult{
		Decision: d,
		Applied:  applied,
		Message:  fmt.Sprintf("%s applied to %d files", d, applied),
	}, nil
}
