// Package app runs the render/input loop. It owns one event source,
// one display handle, and the root component; each iteration renders a
// frame, waits for the next event, translates it to an action, and
// drains any follow-up actions before looping, until the component
// stops or a terminal quit event arrives.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gitlab.com/tinyland/lab/termpulse/pkg/component"
	"gitlab.com/tinyland/lab/termpulse/pkg/display"
	"gitlab.com/tinyland/lab/termpulse/pkg/event"
)

// MaxActionChain bounds how many follow-up actions one dispatch round
// may yield. A component whose Update keeps yielding new actions is
// miswritten; the loop surfaces that as a fatal error instead of
// spinning forever.
const MaxActionChain = 32

// Error taxonomy. Setup and init errors abort before the loop starts;
// render errors abort mid-loop after restoring the terminal; teardown
// errors are reported but the process still exits.
var (
	ErrSetup               = errors.New("app: display setup failed")
	ErrInit                = errors.New("app: component init failed")
	ErrRender              = errors.New("app: render failed")
	ErrTeardown            = errors.New("app: terminal restore failed")
	ErrActionChainOverflow = fmt.Errorf("app: action chain exceeded %d follow-ups", MaxActionChain)
)

// EventSource is the slice of event.Source the loop depends on; tests
// substitute scripted sources.
type EventSource interface {
	Next(ctx context.Context) event.Event
	Close()
}

// Config assembles an App. Backend and Root are required. Source, when
// set, replaces the real tick/input source (used by tests); otherwise
// one is built from TickRate and Input, and WatchSignals controls
// whether process signals feed the stream.
type Config struct {
	Backend      display.Backend
	Root         component.Component
	TickRate     time.Duration
	Input        io.Reader
	Source       EventSource
	WatchSignals bool
}

// App owns the loop's three collaborators. Construct with New, run
// with Run; both are single-use.
type App struct {
	display *display.Display
	source  EventSource
	root    component.Component
}

// New enters the display, starts the event source, and initializes the
// root component, in that order, unwinding the display if a later
// step fails so startup never leaves the terminal half-entered.
func New(cfg Config) (*App, error) {
	d, err := display.New(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	src := cfg.Source
	if src == nil {
		s := event.NewSource(cfg.TickRate, cfg.Input)
		if cfg.WatchSignals {
			s.WatchSignals(d.Size)
		}
		src = s
	}

	if err := cfg.Root.Init(); err != nil {
		src.Close()
		exitErr := d.Exit()
		return nil, errors.Join(fmt.Errorf("%w: %w", ErrInit, err), exitErr)
	}

	return &App{display: d, source: src, root: cfg.Root}, nil
}

// Run executes the loop until the root component stops running, the
// source delivers a quit event, or a fatal error occurs. On every
// return path the terminal is restored first; a restore failure is
// logged and joined onto the result since terminal state is then
// unknown.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		a.source.Close()
		if exitErr := a.display.Exit(); exitErr != nil {
			slog.Error("terminal restore failed", "error", exitErr)
			err = errors.Join(err, fmt.Errorf("%w: %w", ErrTeardown, exitErr))
		}
	}()

	slog.Debug("loop starting")
	for {
		if drawErr := a.display.Draw(a.root.Render); drawErr != nil {
			return fmt.Errorf("%w: %w", ErrRender, drawErr)
		}

		// The loop's only suspension point; cancellation becomes
		// observable here as a QuitEvent.
		ev := a.source.Next(ctx)

		act := a.root.HandleEvent(ev)
		for steps := 0; act != nil; steps++ {
			if steps >= MaxActionChain {
				return ErrActionChainOverflow
			}
			act = a.root.Update(act)
		}

		if !a.root.Running() {
			slog.Debug("loop stopped", "reason", "component")
			return nil
		}
		if _, quit := ev.(event.QuitEvent); quit {
			slog.Debug("loop stopped", "reason", "quit event")
			return nil
		}
	}
}

// Guard is the deferred panic boundary for the process: it restores
// the terminal and then re-raises, so the panic diagnostic reaches
// stderr only after raw mode is gone.
//
//	defer a.Guard()
func (a *App) Guard() {
	if r := recover(); r != nil {
		if err := a.display.Exit(); err != nil {
			slog.Error("terminal restore failed during panic", "error", err)
		}
		panic(r)
	}
}
