package transfer

import "sync/atomic"

// Signal is a process-wide cancellation flag observed by in-flight transfers
// between chunks.
//
// The signal is one-way: it can only move from "running" to "aborting", once
// per process lifetime (typically when the host application begins shutting
// down). There is no timeout mechanism; transfers run to completion or to
// cancellation.
type Signal struct {
	aborting atomic.Bool
}

// NewSignal returns a signal in the "running" state.
func NewSignal() *Signal {
	return &Signal{}
}

// Set flips the signal to "aborting". Subsequent calls are no-ops.
func (s *Signal) Set() {
	s.aborting.Store(true)
}

// Aborting reports whether the signal has been set.
// A nil signal never aborts.
func (s *Signal) Aborting() bool {
	return s != nil && s.aborting.Load()
}
