package terminal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/reqline/internal/logging/events"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/cancelreader"
)

const (
	inputQueueSize = 64
	readBufferSize = 256
)

type sessionState uint8

const (
	sessionIdle sessionState = iota
	sessionActive
	sessionReleased
)

// step is one reversible transition applied during Acquire. undo is nil for
// steps that change nothing.
type step struct {
	name string
	do   func() error
	undo func() error
}

// Session holds a Device in raw + alternate-screen mode. The zero value is not
// usable; construct with NewSession. A session is acquired at most once.
type Session struct {
	dev Device

	mu      sync.Mutex
	state   sessionState
	applied []step

	events chan KeyEvent
	errs   chan error
	quit   chan struct{}
	done   chan struct{}
}

// NewSession wraps dev without touching it.
func NewSession(dev Device) *Session {
	return &Session{dev: dev}
}

// Acquire enters raw mode and the alternate screen and starts reading input.
// On failure the steps already applied are reverted before the
// *TerminalInitError is returned; a revert failure is joined as a
// *TeardownError.
func (s *Session) Acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case sessionActive:
		return nil
	case sessionReleased:
		return ErrSessionClosed
	}

	for _, st := range s.steps() {
		if err := st.do(); err != nil {
			events.Session.StepFailed(st.name, err)
			initErr := &TerminalInitError{Op: st.name, Err: err}
			if rerr := s.revert(); rerr != nil {
				return errors.Join(initErr, &TeardownError{Err: rerr})
			}
			return initErr
		}
		if st.undo != nil {
			s.applied = append(s.applied, st)
		}
	}
	s.state = sessionActive
	events.Session.Acquire(len(s.applied))
	return nil
}

// Release restores the terminal. Only the first call does any work, and it is
// safe after a failed Acquire. Every undo runs even if an earlier one fails.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == sessionReleased {
		return nil
	}
	s.state = sessionReleased
	err := s.revert()
	events.Session.Release(err)
	if err != nil {
		return &TeardownError{Err: err}
	}
	return nil
}

// Active reports whether the session currently holds the terminal.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == sessionActive
}

func (s *Session) steps() []step {
	return []step{
		{name: "detect", do: s.detect},
		{name: "raw", do: s.dev.MakeRaw, undo: s.dev.Restore},
		{name: "screen", do: s.enterScreen, undo: s.leaveScreen},
		{name: "input", do: s.startInput, undo: s.stopInput},
	}
}

// revert undoes applied steps in reverse order. Caller holds s.mu.
func (s *Session) revert() error {
	var errs []error
	for i := len(s.applied) - 1; i >= 0; i-- {
		st := s.applied[i]
		if err := st.undo(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", st.name, err))
		}
	}
	s.applied = nil
	return errors.Join(errs...)
}

func (s *Session) detect() error {
	if !s.dev.IsTerminal() {
		return ErrNotTerminal
	}
	return nil
}

func (s *Session) enterScreen() error {
	return s.writeString(ansi.SetAltScreenSaveCursorMode + ansi.HideCursor + ansi.EraseEntireScreen + ansi.CursorHomePosition)
}

func (s *Session) leaveScreen() error {
	return s.writeString(ansi.ShowCursor + ansi.ResetAltScreenSaveCursorMode)
}

func (s *Session) writeString(seq string) error {
	_, err := s.dev.Write([]byte(seq))
	return err
}

func (s *Session) startInput() error {
	s.events = make(chan KeyEvent, inputQueueSize)
	s.errs = make(chan error, 1)
	s.quit = make(chan struct{})
	s.done = make(chan struct{})
	go s.readInput(s.events, s.errs, s.quit, s.done)
	return nil
}

// stopInput waits for the reader only when the pending read was cancelled;
// an uncancellable reader exits on its next read instead.
func (s *Session) stopInput() error {
	close(s.quit)
	if s.dev.CancelRead() {
		<-s.done
	}
	return nil
}

func (s *Session) readInput(out chan<- KeyEvent, errs chan<- error, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var dec keyDecoder
	buf := make([]byte, readBufferSize)
	for {
		n, err := s.dev.Read(buf)
		for _, ev := range dec.decode(buf[:n]) {
			select {
			case out <- ev:
			case <-quit:
				return
			}
		}
		if err != nil {
			if errors.Is(err, cancelreader.ErrCanceled) {
				return
			}
			select {
			case errs <- err:
			case <-quit:
			}
			return
		}
		select {
		case <-quit:
			return
		default:
		}
	}
}

// inputChannels snapshots the reader channels of an active session.
func (s *Session) inputChannels() (<-chan KeyEvent, <-chan error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != sessionActive {
		return nil, nil, ErrSessionInactive
	}
	return s.events, s.errs, nil
}

// Poll waits up to timeout for one key event. It returns ok=false when the
// window elapses with no input. Queued events are returned one per call.
func (s *Session) Poll(timeout time.Duration) (KeyEvent, bool, error) {
	keys, errs, err := s.inputChannels()
	if err != nil {
		return KeyEvent{}, false, err
	}

	select {
	case ev := <-keys:
		return ev, true, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-keys:
		return ev, true, nil
	case err := <-errs:
		return KeyEvent{}, false, fmt.Errorf("read input: %w", err)
	case <-timer.C:
		return KeyEvent{}, false, nil
	}
}

// NewFrame returns an empty frame sized to the terminal right now.
func (s *Session) NewFrame() (*Frame, error) {
	if !s.Active() {
		return nil, ErrSessionInactive
	}
	width, height, err := s.dev.Size()
	if err != nil {
		return nil, fmt.Errorf("query terminal size: %w", err)
	}
	return NewFrame(width, height), nil
}

// Present writes f to the terminal.
func (s *Session) Present(f *Frame) error {
	if !s.Active() {
		return ErrSessionInactive
	}
	if _, err := s.dev.Write(f.encode()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
