// Package loop drives the render/poll cycle of the terminal UI.
//
// Each iteration renders once and then waits at most one poll window for a
// single key event. Rendering and key handling are injected, so the cadence
// and termination rules can be exercised without a real terminal.
package loop

import (
	"fmt"
	"time"

	"github.com/atomicstack/reqline/internal/logging/events"
	"github.com/atomicstack/reqline/internal/terminal"
)

// DefaultPollTimeout is the poll window used when none is configured.
const DefaultPollTimeout = 250 * time.Millisecond

// State is the application state owned by the loop's caller.
type State struct {
	ShouldQuit bool
}

// Screen provides the frame surface for each render.
type Screen interface {
	NewFrame() (*terminal.Frame, error)
	Present(*terminal.Frame) error
}

// Input waits up to timeout for one key event.
type Input interface {
	Poll(timeout time.Duration) (terminal.KeyEvent, bool, error)
}

// DrawFunc writes the current view into frame.
type DrawFunc func(frame *terminal.Frame)

// KeyFunc returns the state that results from ev.
type KeyFunc func(ev terminal.KeyEvent, state State) State

// RenderError wraps a failure to allocate or present a frame.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render: %v", e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// PollError wraps a failure of the input wait.
type PollError struct {
	Err error
}

func (e *PollError) Error() string { return fmt.Sprintf("poll: %v", e.Err) }
func (e *PollError) Unwrap() error { return e.Err }

// Option configures a Loop.
type Option func(*Loop)

// WithPollTimeout sets the poll window. Non-positive values keep the default.
func WithPollTimeout(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// Loop runs iterations until the state asks to quit or a step fails.
type Loop struct {
	screen  Screen
	input   Input
	draw    DrawFunc
	onKey   KeyFunc
	timeout time.Duration

	iterations int
}

// New builds a loop. A nil draw renders blank frames; a nil onKey ignores
// every event.
func New(screen Screen, input Input, draw DrawFunc, onKey KeyFunc, opts ...Option) *Loop {
	l := &Loop{
		screen:  screen,
		input:   input,
		draw:    draw,
		onKey:   onKey,
		timeout: DefaultPollTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// PollTimeout returns the configured poll window.
func (l *Loop) PollTimeout() time.Duration { return l.timeout }

// Iterations returns how many iterations have rendered so far.
func (l *Loop) Iterations() int { return l.iterations }

// Run steps until done. It returns nil once the state asks to quit.
func (l *Loop) Run(state *State) error {
	for {
		done, err := l.Step(state)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Step runs one iteration: render, then wait for at most one event. It
// reports done without rendering when state.ShouldQuit is already set.
func (l *Loop) Step(state *State) (bool, error) {
	if state.ShouldQuit {
		events.Loop.Quit(l.iterations)
		return true, nil
	}
	l.iterations++

	if err := l.render(); err != nil {
		events.Loop.Abort(l.iterations, err)
		return false, err
	}

	ev, ok, err := l.input.Poll(l.timeout)
	if err != nil {
		err = &PollError{Err: err}
		events.Loop.Abort(l.iterations, err)
		return false, err
	}
	if ok && l.onKey != nil {
		events.Loop.Key(l.iterations, ev.String(), ev.Kind.String())
		*state = l.onKey(ev, *state)
	}
	return false, nil
}

func (l *Loop) render() error {
	frame, err := l.screen.NewFrame()
	if err != nil {
		return &RenderError{Err: err}
	}
	if l.draw != nil {
		l.draw(frame)
	}
	if err := l.screen.Present(frame); err != nil {
		return &RenderError{Err: err}
	}
	return nil
}
