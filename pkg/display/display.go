package display

import (
	"errors"
	"fmt"
	"sync"
)

// ErrClosed is returned by Draw after the Display has been exited.
var ErrClosed = errors.New("display: already exited")

// Display owns the terminal session for the process's lifetime. New
// enters raw mode and the alternate screen exactly once; Exit restores
// both exactly once, no matter how many times it is called or on which
// exit path. Nothing else in the program may write to the terminal
// while a Display is live.
type Display struct {
	backend Backend

	mu         sync.Mutex
	restoreRaw func() error
	entered    bool
}

// New enters raw mode and the alternate screen. On any failure the
// terminal is left exactly as it was found: a raw mode already entered
// is unwound before the error is returned, so there is no half-entered
// state to clean up.
func New(backend Backend) (*Display, error) {
	restore, err := backend.EnterRaw()
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	if err := backend.EnterAltScreen(); err != nil {
		restoreErr := restore()
		return nil, errors.Join(fmt.Errorf("enter alt screen: %w", err), restoreErr)
	}
	return &Display{
		backend:    backend,
		restoreRaw: restore,
		entered:    true,
	}, nil
}

// Draw renders one frame: it sizes a fresh buffer to the terminal,
// invokes render to fill it, and flushes the result in a single write.
// Draw fails after Exit and on write errors; a write error mid-frame
// risks terminal corruption and is treated as fatal by the caller.
func (d *Display) Draw(render func(f *Frame, area Rect)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.entered {
		return ErrClosed
	}
	w, h := d.backend.Size()
	f := NewFrame(w, h)
	render(f, f.Bounds())
	if _, err := d.backend.Write([]byte(f.flush())); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Size returns the current terminal dimensions.
func (d *Display) Size() (width, height int) {
	return d.backend.Size()
}

// Exit restores the terminal: leaves the alternate screen, then leaves
// raw mode. Idempotent: the second and later calls do nothing and
// return nil, so it is safe to call from both the normal shutdown path
// and a deferred panic guard.
func (d *Display) Exit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.entered {
		return nil
	}
	d.entered = false

	altErr := d.backend.ExitAltScreen()
	rawErr := d.restoreRaw()
	return errors.Join(altErr, rawErr)
}
