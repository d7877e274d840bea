package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound      = errors.New("not found")
	ErrNoReview      = errors.New("no group review open")
	ErrSessionDone   = errors.New("no file at cursor")
	ErrInvalidAction = errors.New("invalid action")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ScanError is fatal to session initialization: the source location could
// not be enumerated and the working list stays empty.
type ScanError struct {
	Location string
	Err      error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("cannot scan %s: %v", e.Location, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// MoveError reports a File Mover failure during a bin. It is recovered
// locally: the decision is committed anyway and the error only surfaces as
// a session notice.
type MoveError struct {
	Path string
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %s to trash: %v", e.Path, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }
