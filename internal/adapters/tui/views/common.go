package views

import "desksweep/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// View switching messages handled by the app model

// SwitchToTriageMsg returns to the triage view
type SwitchToTriageMsg struct{}

// SwitchToGroupMsg opens group review for a suggestion of the current file
type SwitchToGroupMsg struct {
	SuggestionIndex int
}

// SwitchToPendingMsg opens the pending-bin review view
type SwitchToPendingMsg struct{}

// SwitchToHelpMsg opens the help view
type SwitchToHelpMsg struct{}

// StatusMsg carries a transient status line for the active view
type StatusMsg struct {
	Text  string
	IsErr bool
}

// SuggestionsReadyMsg reports that fresh suggestions were committed for a file
type SuggestionsReadyMsg struct {
	ID domain.FileID
}
