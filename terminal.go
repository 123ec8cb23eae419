package rowan

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/cancelreader"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by EnterRaw when the input file is not attached
// to a terminal. Callers can still read and write; they just don't get raw
// keystrokes or the alternate screen.
var ErrNotTerminal = errors.New("rowan: input is not a terminal")

// Terminal couples a raw-mode input file with a buffered output file. It
// satisfies Output for the renderer and feeds the run loop's input reader.
// Reads can be interrupted from another goroutine via Cancel, which is how
// Loop.Stop unblocks a pending read.
type Terminal struct {
	in       *os.File
	out      *os.File
	reader   cancelreader.CancelReader
	writer   *bufio.Writer
	oldState *term.State
	rawMode  bool
}

// NewTerminal creates a terminal over the given files. Pass nil for either to
// use os.Stdin / os.Stdout.
func NewTerminal(in, out *os.File) (*Terminal, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	r, err := cancelreader.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("rowan: wrap input reader: %w", err)
	}
	return &Terminal{
		in:     in,
		out:    out,
		reader: r,
		writer: bufio.NewWriterSize(out, 32*1024),
	}, nil
}

// EnterRaw switches the input to raw mode and the output to the alternate
// screen with the cursor hidden. Returns ErrNotTerminal when the input is not
// a tty, leaving the terminal state untouched.
func (t *Terminal) EnterRaw() error {
	if t.rawMode {
		return nil
	}
	fd := t.in.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNotTerminal
	}
	state, err := term.MakeRaw(int(fd))
	if err != nil {
		return fmt.Errorf("rowan: enter raw mode: %w", err)
	}
	t.oldState = state
	t.rawMode = true

	_, _ = t.writer.Write(csiAltScreenOn)
	_, _ = t.writer.Write(csiCursorHide)
	_ = t.writer.Flush()
	return nil
}

// Restore undoes EnterRaw: leaves the alternate screen, shows the cursor, and
// puts the input line discipline back. Safe to call more than once.
func (t *Terminal) Restore() error {
	if !t.rawMode {
		return nil
	}
	_, _ = t.writer.Write(csiCursorShow)
	_, _ = t.writer.Write(csiAltScreenOff)
	_ = t.writer.Flush()

	t.rawMode = false
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("rowan: restore terminal: %w", err)
	}
	return nil
}

// Read reads input bytes, blocking until data arrives or Cancel is called.
// After a Cancel the pending read returns cancelreader.ErrCanceled.
func (t *Terminal) Read(p []byte) (int, error) {
	return t.reader.Read(p)
}

// Cancel interrupts a blocked Read. Reports whether cancelation is supported
// on this platform and input kind.
func (t *Terminal) Cancel() bool {
	return t.reader.Cancel()
}

// Write buffers frame bytes for the output file.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.writer.Write(p)
}

// Flush pushes buffered output to the device.
func (t *Terminal) Flush() error {
	return t.writer.Flush()
}

// Close cancels any pending read and releases the input reader. It does not
// restore the terminal; call Restore for that.
func (t *Terminal) Close() error {
	t.reader.Cancel()
	return t.reader.Close()
}

// Size returns the terminal dimensions in cells, falling back to 80x24 when
// the output is not a tty or the query fails.
func (t *Terminal) Size() (cols, rows int) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}
