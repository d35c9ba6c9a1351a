package app

import (
	"errors"
	"os"
	"time"

	"github.com/atomicstack/reqline/internal/logging"
	"github.com/atomicstack/reqline/internal/loop"
	"github.com/atomicstack/reqline/internal/terminal"
	"github.com/atomicstack/reqline/internal/theme"
)

// DefaultLabel is the text shown on the first row.
const DefaultLabel = "Hello, Reqline! (Press 'q' to quit)"

// Config describes user-provided application options.
type Config struct {
	PollTimeout time.Duration
	Label       string
}

func (c Config) label() string {
	if c.Label == "" {
		return DefaultLabel
	}
	return c.Label
}

// Run takes over the process's terminal and drives the event loop until the
// user quits or a step fails. The terminal is restored before Run returns.
func Run(cfg Config) error {
	console, err := terminal.NewConsole()
	if err != nil {
		return &terminal.TerminalInitError{Op: "open", Err: err}
	}
	defer console.Close()
	return runSession(cfg, console, theme.ForWriter(os.Stdout))
}

// runSession releases the session on every path out, panics included. When the
// loop and the release both fail, the loop error comes first.
func runSession(cfg Config, dev terminal.Device, styles *theme.Styles) (err error) {
	session := terminal.NewSession(dev)
	defer func() {
		rerr := session.Release()
		if rerr == nil {
			return
		}
		logging.Error(rerr)
		if err == nil {
			err = rerr
			return
		}
		err = errors.Join(err, rerr)
	}()

	if err := session.Acquire(); err != nil {
		return err
	}

	var state loop.State
	l := loop.New(session, session, View(cfg.label(), styles), HandleKey, loop.WithPollTimeout(cfg.PollTimeout))
	return l.Run(&state)
}
