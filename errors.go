package moneyapp

import (
	"errors"
	"fmt"
)

// ErrUnknownID is returned by update operations when no record carries the
// given id. The operation is a state no-op in that case.
var ErrUnknownID = errors.New("unknown id")

// FormatError reports an import payload that could not be parsed. No state is
// changed when it is returned.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot parse import payload: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// WriteError reports a failed durable write for one slot. The in-memory state
// is kept regardless: the store is best-effort and never blocks a mutation.
type WriteError struct {
	Slot string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot persist slot %q: %v", e.Slot, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports a failed or corrupt durable read for one slot at startup.
// The slot falls back to its empty default instead of failing startup.
type ReadError struct {
	Slot string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot load slot %q: %v", e.Slot, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
