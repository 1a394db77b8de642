package editing

import (
	"errors"
	"fmt"
)

var (
	ErrSessionClosed  = errors.New("editing: session is not open")
	ErrSessionOpen    = errors.New("editing: session is already open")
	ErrLangRequired   = errors.New("editing: target language is required")
	ErrBaseLangTarget = errors.New("editing: target language cannot be the authoring language")
	ErrLineNotFound   = errors.New("editing: translation line not found")
)

// LineNotFoundError carries the line id that missed.
type LineNotFoundError struct {
	ID int
}

func (e *LineNotFoundError) Error() string {
	return fmt.Sprintf("%s: %d", ErrLineNotFound.Error(), e.ID)
}

func (e *LineNotFoundError) Unwrap() error {
	return ErrLineNotFound
}
