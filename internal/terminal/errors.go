package terminal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotTerminal reports that stdin or stdout is not attached to a TTY.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrSessionClosed is returned when a released session is used again.
	ErrSessionClosed = errors.New("terminal session closed")
	// ErrSessionInactive is returned by frame and input calls made while the
	// session is not acquired.
	ErrSessionInactive = errors.New("terminal session not active")
)

// TerminalInitError reports a failed acquisition step. Steps that succeeded
// before Op have already been reverted when this error is returned.
type TerminalInitError struct {
	Op  string
	Err error
}

func (e *TerminalInitError) Error() string {
	return fmt.Sprintf("terminal init: %s: %v", e.Op, e.Err)
}

func (e *TerminalInitError) Unwrap() error { return e.Err }

// TeardownError reports failures while restoring the terminal. Err may join
// several step failures.
type TeardownError struct {
	Err error
}

func (e *TeardownError) Error() string {
	return fmt.Sprintf("terminal teardown: %v", e.Err)
}

func (e *TeardownError) Unwrap() error { return e.Err }
