package commands

import (
	"context"
	"fmt"

	"desksweep/internal/application"
	"desksweep/internal/config"
)

// LoadSessionResult contains the result of loading a session
type LoadSessionResult struct {
	Location string
	Count    int
	Message  string
}

// LoadSessionCommand enumerates a location and starts a fresh session
type LoadSessionCommand struct {
	svc      *application.Service
	Location string
}

// NewLoadSessionCommand creates a new LoadSessionCommand
func NewLoadSessionCommand(svc *application.Service, location string) *LoadSessionCommand {
	return &LoadSessionCommand{svc: svc, Location: location}
}

// Validate checks the command arguments
func (c *LoadSessionCommand) Validate() error {
	if c.Location == "" {
		return &application.ValidationError{
			Field:   "location",
			Message: "location is required",
		}
	}
	return nil
}

// Execute runs the load session command
func (c *LoadSessionCommand) Execute(ctx context.Context) (*LoadSessionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	location := config.ExpandPath(c.Location)
	if err := c.svc.Load(location); err != nil {
		return nil, err
	}
	n := c.svc.Session().Len()
	return &LoadSessionResult{
		Location: location,
		Count:    n,
		Message:  fmt.Sprintf("Loaded %d files from %s", n, location),
	}, nil
}
