package transfer

import (
	"errors"
	"fmt"
)

// Standard transfer engine errors. The read/write facade maps these onto its
// outcome taxonomy.
var (
	// ErrNotFound indicates a read was requested for a path with no backing
	// file.
	ErrNotFound = errors.New("file not found")

	// ErrAborted indicates a transfer observed the abort signal between
	// chunks and stopped early. The on-disk file (for writes) or the returned
	// text (for reads) is partial.
	ErrAborted = errors.New("transfer aborted")

	// ErrCompleted indicates Resume was called on an operation that already
	// finished.
	ErrCompleted = errors.New("transfer already completed")
)

// Error wraps a sentinel or I/O error with the failing operation's context.
//
// errors.Is matches through the wrapping:
//
//	err := &Error{Op: "write", Path: p, Err: ErrAborted}
//	errors.Is(err, ErrAborted) // true
type Error struct {
	// Op is "write" or "read".
	Op string

	// Path is the absolute destination or source path.
	Path string

	// Chunk is the index of the chunk being transferred when the failure
	// occurred, or -1 when no chunk was in flight.
	Chunk int

	// Err is the wrapped cause.
	Err error
}

// Error returns a human-readable description including operation and path.
func (e *Error) Error() string {
	if e.Chunk >= 0 {
		return fmt.Sprintf("transfer %s %s: chunk %d: %s", e.Op, e.Path, e.Chunk, e.Err)
	}
	return fmt.Sprintf("transfer %s %s: %s", e.Op, e.Path, e.Err)
}

// Unwrap returns the wrapped cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}
