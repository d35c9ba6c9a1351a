package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// Device is the terminal a Session drives.
type Device interface {
	io.Reader
	io.Writer

	// IsTerminal reports whether both input and output are TTYs.
	IsTerminal() bool
	// MakeRaw disables line buffering and echo on the input.
	MakeRaw() error
	// Restore undoes MakeRaw. It is a no-op when raw mode is not enabled.
	Restore() error
	// Size returns the current output dimensions in cells.
	Size() (width, height int, err error)
	// CancelRead unblocks a pending Read, which then fails with
	// cancelreader.ErrCanceled. It reports whether cancellation succeeded.
	CancelRead() bool
}

// Console is the Device attached to the process's stdin and stdout.
type Console struct {
	in     *os.File
	out    *os.File
	reader cancelreader.CancelReader
	saved  *term.State
}

// NewConsole opens a console over os.Stdin and os.Stdout.
func NewConsole() (*Console, error) {
	return newConsole(os.Stdin, os.Stdout)
}

func newConsole(in, out *os.File) (*Console, error) {
	reader, err := cancelreader.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("open input reader: %w", err)
	}
	return &Console{in: in, out: out, reader: reader}, nil
}

func (c *Console) Read(p []byte) (int, error) {
	return c.reader.Read(p)
}

func (c *Console) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func (c *Console) IsTerminal() bool {
	return term.IsTerminal(int(c.in.Fd())) && term.IsTerminal(int(c.out.Fd()))
}

func (c *Console) MakeRaw() error {
	saved, err := term.MakeRaw(int(c.in.Fd()))
	if err != nil {
		return err
	}
	c.saved = saved
	return nil
}

func (c *Console) Restore() error {
	if c.saved == nil {
		return nil
	}
	if err := term.Restore(int(c.in.Fd()), c.saved); err != nil {
		return err
	}
	c.saved = nil
	return nil
}

func (c *Console) Size() (int, int, error) {
	return term.GetSize(int(c.out.Fd()))
}

func (c *Console) CancelRead() bool {
	return c.reader.Cancel()
}

// Close releases the input reader. The underlying files stay open.
func (c *Console) Close() error {
	return c.reader.Close()
}
