package store

import (
	"context"
	"errors"

	"github.com/stashfs/stashfs/pkg/transfer"
)

// FailureKind classifies why a save or load did not fully succeed. Hosts
// branch on the kind; Message carries the human-readable detail.
type FailureKind int

const (
	// KindNone means the operation succeeded.
	KindNone FailureKind = iota

	// KindPathInvalid means the logical path could not be resolved to a
	// storage location. No I/O was attempted.
	KindPathInvalid

	// KindNotFound means a load targeted a path with no backing file.
	KindNotFound

	// KindEmptyContent means a load found a zero-byte file. The read itself
	// succeeded; there is just nothing to decode.
	KindEmptyContent

	// KindWrongDatatype means the file's content could not be decoded into
	// the requested type. The raw text was read successfully.
	KindWrongDatatype

	// KindIO means the underlying read or write failed, including transfers
	// stopped by the abort signal.
	KindIO

	// KindUndefined is the fallback for failures outside the taxonomy.
	KindUndefined
)

// String returns the kind's stable name, used in logs and CLI output.
func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPathInvalid:
		return "path_invalid"
	case KindNotFound:
		return "not_found"
	case KindEmptyContent:
		return "empty_content"
	case KindWrongDatatype:
		return "wrong_datatype"
	case KindIO:
		return "io_failure"
	case KindUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// WriteResult reports the outcome of a save.
type WriteResult struct {
	// OK is true when the full payload reached storage.
	OK bool

	// Kind classifies the failure; KindNone on success.
	Kind FailureKind

	// Message is the human-readable failure detail, empty on success.
	Message string
}

// ReadResult reports the outcome of a load.
type ReadResult struct {
	// OK is true when the read itself succeeded, including the empty-file
	// case. Decode failures leave OK false.
	OK bool

	// Kind classifies the outcome; KindNone for a clean load with content.
	Kind FailureKind

	// Message is the human-readable failure detail, empty on success.
	Message string

	// Text is the raw file content. Populated on success and on decode
	// failure; partial content from aborted transfers is not exposed.
	Text string
}

// writeOK is the successful WriteResult.
func writeOK() WriteResult {
	return WriteResult{OK: true, Kind: KindNone}
}

// classify maps an engine error onto the failure taxonomy.
func classify(err error) (FailureKind, string) {
	switch {
	case err == nil:
		return KindNone, ""
	case errors.Is(err, transfer.ErrNotFound):
		return KindNotFound, err.Error()
	case errors.Is(err, transfer.ErrAborted):
		return KindIO, err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindIO, err.Error()
	}

	var terr *transfer.Error
	if errors.As(err, &terr) {
		return KindIO, err.Error()
	}
	return KindUndefined, err.Error()
}
