package event

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// eventBuffer is the capacity of the merged event channel. It is large
// enough that a pending tick is never dropped while a burst of input is
// being drained: a producer that cannot send parks on the channel
// rather than discarding its event.
const eventBuffer = 16

// Source merges a periodic ticker, a raw-input reader, and POSIX
// signals into one ordered stream of events. Producers run as
// background goroutines; the consumer pulls events through Next.
//
// The zero tick rate disables the ticker entirely, so a Source built
// with tickRate 0 produces only input- and signal-derived events.
type Source struct {
	events   chan Event
	tickRate time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewSource starts a Source reading key input from input (pass nil for
// no input producer, e.g. in tests that inject events another way).
// A tickRate <= 0 disables periodic ticks.
func NewSource(tickRate time.Duration, input io.Reader) *Source {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Source{
		events:   make(chan Event, eventBuffer),
		tickRate: tickRate,
		ctx:      ctx,
		cancel:   cancel,
	}
	if tickRate > 0 {
		go s.tickLoop()
	}
	if input != nil {
		go s.readLoop(input)
	}
	return s
}

// WatchSignals starts the signal producer: SIGWINCH is translated to a
// ResizeEvent using size to query the new dimensions, and SIGINT or
// SIGTERM to a QuitEvent. An initial ResizeEvent with the current size
// is emitted immediately so components learn their dimensions without
// waiting for a real resize. Call once, from the owning process.
func (s *Source) WatchSignals(size func() (width, height int)) {
	w, h := size()
	go func() {
		s.send(ResizeEvent{Width: w, Height: h})
		s.signalLoop(size)
	}()
}

// Next blocks until the next event from any producer is available.
// Events are delivered strictly in arrival order. Next never fails:
// when ctx is done or the Source has been closed, any buffered events
// are drained first and then every call resolves to QuitEvent.
func (s *Source) Next(ctx context.Context) Event {
	// Buffered events win over a concurrent shutdown so nothing that
	// already arrived is lost.
	select {
	case ev := <-s.events:
		return ev
	default:
	}

	select {
	case ev := <-s.events:
		return ev
	case <-ctx.Done():
		return QuitEvent{}
	case <-s.ctx.Done():
		return QuitEvent{}
	}
}

// Close stops all producers. Idempotent. In-flight and subsequent Next
// calls resolve to QuitEvent once any buffered events are consumed.
func (s *Source) Close() {
	s.once.Do(s.cancel)
}

// send delivers ev to the merged channel, giving up only when the
// Source is closed.
func (s *Source) send(ev Event) {
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

// tickLoop emits TickEvents at the configured rate until Close.
func (s *Source) tickLoop() {
	ticker := time.NewTicker(s.tickRate)
	defer ticker.Stop()

	for {
		select {
		case t := <-ticker.C:
			s.send(TickEvent{Time: t})
		case <-s.ctx.Done():
			return
		}
	}
}

// readLoop reads raw input bytes, decodes them into key events, and
// feeds them to the merged channel. EOF or a read error ends the input
// stream and is surfaced as a QuitEvent so the loop can exit instead
// of idling forever on a dead input.
//
// A read blocked on a live terminal cannot be interrupted portably;
// after Close the goroutine exits on its next read return, and its
// sends are discarded by send.
func (s *Source) readLoop(input io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := input.Read(buf)
		if n > 0 {
			for _, k := range parseKeys(buf[:n]) {
				s.send(k)
			}
		}
		if err != nil {
			s.send(QuitEvent{})
			return
		}
		select {
		case <-s.ctx.Done():
			return
		default:
		}
	}
}

// signalLoop translates process signals into events until Close.
func (s *Source) signalLoop(size func() (width, height int)) {
	sigCh := make(chan os.Signal, 4)
	signal.Notify(sigCh, unix.SIGWINCH, unix.SIGINT, unix.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case sig := <-sigCh:
			if sig == unix.SIGWINCH {
				w, h := size()
				s.send(ResizeEvent{Width: w, Height: h})
				continue
			}
			s.send(QuitEvent{})
		case <-s.ctx.Done():
			return
		}
	}
}
