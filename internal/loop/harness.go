package loop

import (
	"time"

	"github.com/atomicstack/reqline/internal/terminal"
)

// Harness is a scripted Screen and Input for driving a Loop in tests. Queued
// keys are returned one per poll; an empty queue reports an empty window
// immediately instead of waiting.
type Harness struct {
	Width  int
	Height int

	// FrameErr fails NewFrame, PresentErr fails Present.
	FrameErr   error
	PresentErr error
	// PollErr is returned by poll number FailPollAt (1-based, 0 disables).
	PollErr    error
	FailPollAt int

	Frames   []*terminal.Frame
	Timeouts []time.Duration
	Calls    []string

	keys []terminal.KeyEvent
}

// NewHarness creates a harness with a width x height surface and queued keys.
func NewHarness(width, height int, keys ...terminal.KeyEvent) *Harness {
	return &Harness{Width: width, Height: height, keys: keys}
}

// Push queues more keys.
func (h *Harness) Push(keys ...terminal.KeyEvent) {
	h.keys = append(h.keys, keys...)
}

// Pending returns the number of keys not yet polled.
func (h *Harness) Pending() int { return len(h.keys) }

func (h *Harness) NewFrame() (*terminal.Frame, error) {
	h.Calls = append(h.Calls, "frame")
	if h.FrameErr != nil {
		return nil, h.FrameErr
	}
	return terminal.NewFrame(h.Width, h.Height), nil
}

func (h *Harness) Present(f *terminal.Frame) error {
	h.Calls = append(h.Calls, "present")
	if h.PresentErr != nil {
		return h.PresentErr
	}
	h.Frames = append(h.Frames, f)
	return nil
}

func (h *Harness) Poll(timeout time.Duration) (terminal.KeyEvent, bool, error) {
	h.Calls = append(h.Calls, "poll")
	h.Timeouts = append(h.Timeouts, timeout)
	if h.FailPollAt > 0 && len(h.Timeouts) == h.FailPollAt {
		return terminal.KeyEvent{}, false, h.PollErr
	}
	if len(h.keys) == 0 {
		return terminal.KeyEvent{}, false, nil
	}
	ev := h.keys[0]
	h.keys = h.keys[1:]
	return ev, true, nil
}

// Polls returns how many times Poll was called.
func (h *Harness) Polls() int { return len(h.Timeouts) }

// Last returns the most recently presented frame, or nil.
func (h *Harness) Last() *terminal.Frame {
	if len(h.Frames) == 0 {
		return nil
	}
	return h.Frames[len(h.Frames)-1]
}
