// Package display owns the terminal's interactive mode: raw input, the
// alternate screen, and the buffered frame written each render. The
// Display handle guarantees the terminal is restored exactly once on
// every exit path; no other part of the program writes to the terminal
// directly.
package display

import (
	"errors"
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/sys/unix"
)

// ErrNotTerminal is returned when stdin or stdout is not attached to a
// terminal, e.g. when output is piped.
var ErrNotTerminal = errors.New("display: stdin/stdout is not a terminal")

// Backend abstracts the physical terminal so the Display lifecycle can
// be exercised against a recording fake in tests. TTYBackend is the
// real implementation.
type Backend interface {
	// EnterRaw puts the input side into raw mode and returns the
	// function that restores the previous mode.
	EnterRaw() (restore func() error, err error)

	// EnterAltScreen switches to the alternate screen buffer and hides
	// the cursor.
	EnterAltScreen() error

	// ExitAltScreen returns to the main screen buffer and shows the
	// cursor.
	ExitAltScreen() error

	// Size returns the terminal dimensions in character cells.
	Size() (width, height int)

	// Write sends rendered bytes to the terminal.
	Write(p []byte) (n int, err error)
}

// TTYBackend drives the process's controlling terminal: stdin for raw
// mode, stdout for output.
type TTYBackend struct {
	in  *os.File
	tty *os.File
	out *termenv.Output
}

// NewTTYBackend validates that the process is attached to a terminal
// and returns a backend for it.
func NewTTYBackend() (*TTYBackend, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return nil, ErrNotTerminal
	}
	return &TTYBackend{
		in:  os.Stdin,
		tty: os.Stdout,
		out: termenv.NewOutput(os.Stdout),
	}, nil
}

// EnterRaw implements Backend.
func (b *TTYBackend) EnterRaw() (func() error, error) {
	fd := b.in.Fd()
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, state) }, nil
}

// EnterAltScreen implements Backend.
func (b *TTYBackend) EnterAltScreen() error {
	b.out.AltScreen()
	b.out.HideCursor()
	return nil
}

// ExitAltScreen implements Backend.
func (b *TTYBackend) ExitAltScreen() error {
	b.out.ShowCursor()
	b.out.ExitAltScreen()
	return nil
}

// Size implements Backend. It queries TIOCGWINSZ on stdout, falling
// back to the COLUMNS/LINES environment variables and then to 80x24.
func (b *TTYBackend) Size() (int, int) {
	if ws, err := unix.IoctlGetWinsize(int(b.tty.Fd()), unix.TIOCGWINSZ); err == nil {
		if ws.Col > 0 && ws.Row > 0 {
			return int(ws.Col), int(ws.Row)
		}
	}
	return envInt("COLUMNS", 80), envInt("LINES", 24)
}

// Write implements Backend.
func (b *TTYBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// envInt reads a positive integer from the named environment variable,
// returning fallback if it is unset or invalid.
func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
