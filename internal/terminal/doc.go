// Package terminal owns the terminal device for the lifetime of a session.
//
// A Session moves a Device between line mode and raw + alternate-screen mode.
// Acquisition is a fixed sequence of reversible steps (detect, raw, screen,
// input); a failing step reverts the steps before it, and Release reverts
// whatever is still applied, exactly once.
//
// While active, the session is also the frame surface (NewFrame, Present) and
// the input source (Poll) for the event loop. Key bytes are read and decoded
// on a single background goroutine that only hands events over a channel;
// frames are written from the caller's goroutine.
//
// Console is the Device backed by the process's standard streams.
package terminal
