package commands

import (
	"context"
	"fmt"

	"desksweep/internal/application"
	"desksweep/internal/domain"
)

// SetFilterResult contains the result of changing the type filter
type SetFilterResult struct {
	Visible int
	Message string
}

// SetFilterCommand replaces the active type filter. An empty Type clears it.
type SetFilterCommand struct {
	svc  *application.Service
	Type string
}

// NewSetFilterCommand creates a new SetFilterCommand
func NewSetFilterCommand(svc *application.Service, fileType string) *SetFilterCommand {
	return &SetFilterCommand{svc: svc, Type: fileType}
}

// Validate checks the command arguments
func (c *SetFilterCommand) Validate() error {
	if c.Type == "" || c.Type == "none" {
		return nil
	}
	if _, ok := domain.ParseFileType(c.Type); !ok {
		return &application.ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown file type: %s", c.Type),
		}
	}
	return nil
}

// Execute runs the set filter command
func (c *SetFilterCommand) Execute(ctx context.Context) (*SetFilterResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Type == "" || c.Type == "none" {
		c.svc.ClearFilter()
		return &SetFilterResult{
			Visible: c.svc.Session().VisibleLen(),
			Message: "Filter cleared",
		}, nil
	}

	t, _ := domain.ParseFileType(c.Type)
	c.svc.SetFilter(t)
	n := c.svc.Session().VisibleLen()
	return &SetFilterResult{
		Visible: n,
		Message: fmt.Sprintf("Showing %d %s files", n, t),
	}, nil
}
