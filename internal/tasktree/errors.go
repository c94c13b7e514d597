package tasktree

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedID reports an id with an empty, zero or non-numeric component.
	ErrMalformedID = errors.New("malformed id")
	// ErrIDOutOfRange reports an id component past the end of its sibling list.
	ErrIDOutOfRange = errors.New("id out of range")
	// ErrEmptyTree reports an id addressed against a tree with no tasks.
	ErrEmptyTree = errors.New("tree is empty")
	// ErrInvalidMove reports a move or swap that would put a task inside itself.
	ErrInvalidMove = errors.New("cannot move a task into its own subtasks")
)

// IDError ties one of the sentinel errors to the id that caused it.
type IDError struct {
	ID  string
	Err error
}

func (e *IDError) Error() string {
	if e.ID == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("invalid id %q: %s", e.ID, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *IDError) Unwrap() error {
	return e.Err
}

func idError(id string, err error) error {
	return &IDError{ID: id, Err: err}
}
