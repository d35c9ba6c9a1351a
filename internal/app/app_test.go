package app

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/reqline/internal/loop"
	"github.com/atomicstack/reqline/internal/terminal"
	"github.com/atomicstack/reqline/internal/theme"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/cancelreader"
)

// scriptedDevice is a terminal.Device whose input is scripted and whose
// output is recorded. Failures are injected per call.
type scriptedDevice struct {
	mu sync.Mutex

	notTerminal bool
	restoreErr  error
	writeErr    error
	failWriteAt int

	restoreCalls int
	sizeCalls    int
	writes       []string

	input      chan []byte
	readErr    chan error
	canceled   chan struct{}
	cancelOnce sync.Once
}

func newScriptedDevice(input ...string) *scriptedDevice {
	d := &scriptedDevice{
		input:    make(chan []byte, len(input)+1),
		readErr:  make(chan error, 1),
		canceled: make(chan struct{}),
	}
	for _, chunk := range input {
		d.input <- []byte(chunk)
	}
	return d
}

func (d *scriptedDevice) Read(p []byte) (int, error) {
	select {
	case b := <-d.input:
		return copy(p, b), nil
	case err := <-d.readErr:
		return 0, err
	case <-d.canceled:
		return 0, cancelreader.ErrCanceled
	}
}

func (d *scriptedDevice) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes = append(d.writes, string(p))
	if d.failWriteAt > 0 && len(d.writes) == d.failWriteAt {
		return 0, d.writeErr
	}
	return len(p), nil
}

func (d *scriptedDevice) IsTerminal() bool { return !d.notTerminal }
func (d *scriptedDevice) MakeRaw() error { return nil }

func (d *scriptedDevice) Restore() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.restoreCalls++
	return d.restoreErr
}

func (d *scriptedDevice) Size() (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sizeCalls++
	return 40, 2, nil
}

func (d *scriptedDevice) CancelRead() bool {
	d.cancelOnce.Do(func() { close(d.canceled) })
	return true
}

func (d *scriptedDevice) frames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for _, w := range d.writes {
		if strings.HasPrefix(w, ansi.CursorHomePosition) {
			out = append(out, w)
		}
	}
	return out
}

func testConfig() Config {
	return Config{PollTimeout: time.Second}
}

func TestRunSessionQuitsOnQPress(t *testing.T) {
	dev := newScriptedDevice("a", "q")

	if err := runSession(testConfig(), dev, theme.Plain()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := len(dev.frames()); got != 2 {
		t.Fatalf("expected 2 rendered frames, got %d", got)
	}
	if !strings.Contains(dev.frames()[0], DefaultLabel) {
		t.Fatalf("expected label in frame, got %q", dev.frames()[0])
	}
	if dev.restoreCalls != 1 {
		t.Fatalf("expected terminal restored once, got %d", dev.restoreCalls)
	}
	last := dev.writes[len(dev.writes)-1]
	if !strings.Contains(last, ansi.ResetAltScreenSaveCursorMode) {
		t.Fatalf("expected primary screen restored last, got %q", last)
	}
}

func TestRunSessionReleasesOnRenderError(t *testing.T) {
	dev := newScriptedDevice()
	dev.writeErr = errors.New("stdout closed")
	dev.failWriteAt = 2

	err := runSession(testConfig(), dev, theme.Plain())
	var renderErr *loop.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected RenderError, got %v", err)
	}
	if dev.restoreCalls != 1 {
		t.Fatalf("expected terminal restored once, got %d", dev.restoreCalls)
	}
}

func TestRunSessionReleasesOnPollError(t *testing.T) {
	dev := newScriptedDevice()
	dev.readErr <- errors.New("stdin gone")

	err := runSession(testConfig(), dev, theme.Plain())
	var pollErr *loop.PollError
	if !errors.As(err, &pollErr) {
		t.Fatalf("expected PollError, got %v", err)
	}
	if dev.restoreCalls != 1 {
		t.Fatalf("expected terminal restored once, got %d", dev.restoreCalls)
	}
	if got := len(dev.frames()); got != 1 {
		t.Fatalf("expected the failing iteration's frame only, got %d", got)
	}
}

func TestRunSessionAcquireFailureSkipsLoop(t *testing.T) {
	dev := newScriptedDevice("q")
	dev.notTerminal = true

	err := runSession(testConfig(), dev, theme.Plain())
	var initErr *terminal.TerminalInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected TerminalInitError, got %v", err)
	}
	if !errors.Is(err, terminal.ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
	if dev.sizeCalls != 0 || len(dev.writes) != 0 {
		t.Fatalf("expected no render, got size=%d writes=%d", dev.sizeCalls, len(dev.writes))
	}
	if dev.restoreCalls != 0 {
		t.Fatalf("expected nothing to restore, got %d", dev.restoreCalls)
	}
}

func TestRunSessionLoopErrorTakesPriority(t *testing.T) {
	dev := newScriptedDevice()
	dev.writeErr = errors.New("stdout closed")
	dev.failWriteAt = 2
	dev.restoreErr = errors.New("tcsetattr failed")

	err := runSession(testConfig(), dev, theme.Plain())
	var renderErr *loop.RenderError
	var teardownErr *terminal.TeardownError
	if !errors.As(err, &renderErr) || !errors.As(err, &teardownErr) {
		t.Fatalf("expected render and teardown errors, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "render:") {
		t.Fatalf("expected render error reported first, got %q", err.Error())
	}
}

func TestRunSessionTeardownErrorAfterCleanQuit(t *testing.T) {
	dev := newScriptedDevice("q")
	dev.restoreErr = errors.New("tcsetattr failed")

	err := runSession(testConfig(), dev, theme.Plain())
	var teardownErr *terminal.TeardownError
	if !errors.As(err, &teardownErr) {
		t.Fatalf("expected TeardownError, got %v", err)
	}
	if !errors.Is(err, dev.restoreErr) {
		t.Fatalf("expected restore failure in chain, got %v", err)
	}
}

func TestRunSessionReleasesOnPanic(t *testing.T) {
	dev := newScriptedDevice()
	styles := theme.Plain()
	styles.Label = nil

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected draw panic to propagate")
			}
		}()
		_ = runSession(testConfig(), dev, styles)
	}()
	if dev.restoreCalls != 1 {
		t.Fatalf("expected terminal restored during panic, got %d", dev.restoreCalls)
	}
}
