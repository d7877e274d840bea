package commands

import (
	"context"
	"fmt"

	"desksweep/internal/application"
	"desksweep/internal/domain"
	"desksweep/internal/review"
)

// StartGroupReviewResult contains the opened review context summary
type StartGroupReviewResult struct {
	Kind    domain.SuggestionKind
	Members int
	Actions []review.SmartAction
	Message string
}

// StartGroupReviewCommand opens a group review for one of the current
// file's cached suggestions, addressed by its position in the list
type StartGroupReviewCommand struct {
	svc             *application.Service
	SuggestionIndex int
}

// NewStartGroupReviewCommand creates a new StartGroupReviewCommand
func NewStartGroupReviewCommand(svc *application.Service, index int) *StartGroupReviewCommand {
	return &StartGroupReviewCommand{svc: svc, SuggestionIndex: index}
}

// Validate checks the command arguments
func (c *StartGroupReviewCommand) Validate() error {
	if c.SuggestionIndex < 0 {
		return &application.ValidationError{
			Field:   "suggestion",
			Message: "suggestion index must not be negative",
		}
	}
	return nil
}

// Execute runs the start group review command
func (c *StartGroupReviewCommand) Execute(ctx context.Context) (*StartGroupReviewResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sugs := c.svc.CurrentSuggestions()
	if c.SuggestionIndex >= len(sugs) {
		return nil, application.ErrNotFound
	}
	sug := sugs[c.SuggestionIndex]
	if !sug.IsGroup() {
		return nil, &application.ValidationError{
			Field:   "suggestion",
			Message: fmt.Sprintf("%s suggestions have no group to review", sug.Kind),
		}
	}
	if err := c.svc.StartGroupReview(sug); err != nil {
		return nil, err
	}

	actions, err := c.svc.GroupActions()
	if err != nil {
		return nil, err
	}
	rc := c.svc.Review()
	return &StartGroupReviewResult{
		Kind:    sug.Kind,
		Members: len(rc.Members),
		Actions: actions,
		Message: fmt.Sprintf("Reviewing %d files (%s)", len(rc.Members), sug.Kind),
	}, nil
}

// ApplyGroupActionResult contains the outcome of a smart action
type ApplyGroupActionResult struct {
	Remaining int
	Closed    bool
	Message   string
}

// ApplyGroupActionCommand executes one derived smart action against the
// whole group atomically
type ApplyGroupActionCommand struct {
	svc         *application.Service
	ActionIndex int
}

// NewApplyGroupActionCommand creates a new ApplyGroupActionCommand
func NewApplyGroupActionCommand(svc *application.Service, index int) *ApplyGroupActionCommand {
	return &ApplyGroupActionCommand{svc: svc, ActionIndex: index}
}

// Execute runs the apply group action command
func (c *ApplyGroupActionCommand) Execute(ctx context.Context) (*ApplyGroupActionResult, error) {
	if err := c.svc.ApplyGroupAction(c.ActionIndex); err != nil {
		return nil, err
	}
	rc := c.svc.Review()
	if rc == nil {
		return &ApplyGroupActionResult{Closed: true, Message: "Group processed, review closed"}, nil
	}
	return &ApplyGroupActionResult{
		Remaining: len(rc.Members),
		Message:   fmt.Sprintf("%d files left in the group", len(rc.Members)),
	}, nil
}

// CloseGroupReviewCommand abandons the open review
type CloseGroupReviewCommand struct {
	svc *application.Service
}

// NewCloseGroupReviewCommand creates a new CloseGroupReviewCommand
func NewCloseGroupReviewCommand(svc *application.Service) *CloseGroupReviewCommand {
	return &CloseGroupReviewCommand{svc: svc}
}

// Execute runs the close group review command
func (c *CloseGroupReviewCommand) Execute(ctx context.Context) error {
	c.svc.CloseGroupReview()
	return nil
}
