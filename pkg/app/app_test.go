package app

import (
	"context"
	"errors"
	"testing"

	"gitlab.com/tinyland/lab/termpulse/pkg/action"
	"gitlab.com/tinyland/lab/termpulse/pkg/display"
	"gitlab.com/tinyland/lab/termpulse/pkg/event"
)

// testBackend is a recording display.Backend; no real terminal.
type testBackend struct {
	rawEnters int
	rawExits  int
	altEnters int
	altExits  int
	rawErr    error
}

func (b *testBackend) EnterRaw() (func() error, error) {
	if b.rawErr != nil {
		return nil, b.rawErr
	}
	b.rawEnters++
	return func() error {
		b.rawExits++
		return nil
	}, nil
}

func (b *testBackend) EnterAltScreen() error       { b.altEnters++; return nil }
func (b *testBackend) ExitAltScreen() error        { b.altExits++; return nil }
func (b *testBackend) Size() (int, int)            { return 40, 10 }
func (b *testBackend) Write(p []byte) (int, error) { return len(p), nil }

// scriptedSource replays a fixed event sequence, then quits.
type scriptedSource struct {
	events []event.Event
	pos    int
	closed bool
}

func (s *scriptedSource) Next(ctx context.Context) event.Event {
	if s.pos >= len(s.events) {
		return event.QuitEvent{}
	}
	ev := s.events[s.pos]
	s.pos++
	return ev
}

func (s *scriptedSource) Close() { s.closed = true }

// testComponent is a scriptable component with call counters.
type testComponent struct {
	running bool
	initErr error

	inits   int
	renders int
	updates int

	handle func(event.Event) action.Action
	update func(action.Action) action.Action
}

func newTestComponent() *testComponent {
	return &testComponent{
		running: true,
		handle:  func(event.Event) action.Action { return action.Nop{} },
		update:  func(action.Action) action.Action { return nil },
	}
}

func (c *testComponent) Init() error {
	c.inits++
	return c.initErr
}

func (c *testComponent) HandleEvent(ev event.Event) action.Action {
	return c.handle(ev)
}

func (c *testComponent) Update(act action.Action) action.Action {
	c.updates++
	if _, ok := act.(action.Quit); ok {
		c.running = false
		return nil
	}
	return c.update(act)
}

func (c *testComponent) Render(f *display.Frame, area display.Rect) {
	c.renders++
}

func (c *testComponent) Running() bool { return c.running }

func key(r rune) event.Event {
	return event.KeyEvent{Code: event.KeyRune, Rune: r}
}

func newTestApp(t *testing.T, b *testBackend, src EventSource, c *testComponent) *App {
	t.Helper()
	a, err := New(Config{Backend: b, Root: c, Source: src})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestRenderCountIsEventsPlusOne(t *testing.T) {
	b := &testBackend{}
	src := &scriptedSource{events: []event.Event{key('a'), key('b'), key('c')}}
	c := newTestComponent()

	a := newTestApp(t, b, src, c)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// One render before each of the three events, one before the
	// terminating quit event, none after it.
	if c.renders != 4 {
		t.Errorf("renders = %d, want 4 (3 events + 1 initial)", c.renders)
	}
}

func TestQuitEventStopsLoopCleanly(t *testing.T) {
	b := &testBackend{}
	src := &scriptedSource{events: []event.Event{event.QuitEvent{}, key('x')}}
	c := newTestComponent()

	a := newTestApp(t, b, src, c)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if c.renders != 1 {
		t.Errorf("renders = %d, want 1 (no render after quit)", c.renders)
	}
	if src.pos != 1 {
		t.Errorf("loop polled %d events, want 1 (nothing after quit)", src.pos)
	}
	if b.rawExits != 1 || b.altExits != 1 {
		t.Errorf("terminal not restored: rawExits=%d altExits=%d", b.rawExits, b.altExits)
	}
	if !src.closed {
		t.Error("event source not closed on exit")
	}
}

func TestComponentStoppingStopsLoop(t *testing.T) {
	b := &testBackend{}
	src := &scriptedSource{events: []event.Event{key('q'), key('x'), key('x')}}
	c := newTestComponent()
	c.handle = func(ev event.Event) action.Action {
		if k, ok := ev.(event.KeyEvent); ok && k.Rune == 'q' {
			return action.Quit{}
		}
		return action.Nop{}
	}

	a := newTestApp(t, b, src, c)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if src.pos != 1 {
		t.Errorf("loop consumed %d events, want 1 (stops once Running is false)", src.pos)
	}
	if c.renders != 1 {
		t.Errorf("renders = %d, want 1", c.renders)
	}
}

// pollProbe wraps a source to observe poll boundaries.
type pollProbe struct {
	inner  EventSource
	onPoll func()
}

func (p *pollProbe) Next(ctx context.Context) event.Event {
	p.onPoll()
	return p.inner.Next(ctx)
}

func (p *pollProbe) Close() { p.inner.Close() }

func TestActionChainDrainsBeforeNextPoll(t *testing.T) {
	type selectItem struct{ index int }
	type scrollIntoView struct{ index int }

	b := &testBackend{}
	src := &scriptedSource{events: []event.Event{key('j')}}
	c := newTestComponent()
	c.handle = func(event.Event) action.Action {
		return selectItem{index: 2}
	}
	c.update = func(act action.Action) action.Action {
		if sel, ok := act.(selectItem); ok {
			return scrollIntoView{index: sel.index}
		}
		return nil
	}

	rendersAtPoll := -1
	updatesAtPoll := -1
	probe := &pollProbe{inner: src, onPoll: func() {
		if src.pos == 1 { // second poll, right after the chain drained
			rendersAtPoll = c.renders
			updatesAtPoll = c.updates
		}
	}}

	a := newTestApp(t, b, probe, c)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Between the event and the next poll: two updates (SelectItem,
	// then its follow-up ScrollIntoView) and exactly one more render.
	if updatesAtPoll != 2 {
		t.Errorf("updates before second poll = %d, want 2", updatesAtPoll)
	}
	if rendersAtPoll != 2 {
		t.Errorf("renders before second poll = %d, want 2 (initial + one)", rendersAtPoll)
	}
}

func TestInfiniteActionChainIsFatal(t *testing.T) {
	b := &testBackend{}
	src := &scriptedSource{events: []event.Event{key('a')}}
	c := newTestComponent()
	c.update = func(action.Action) action.Action {
		return action.Render{} // always yields another action
	}

	a := newTestApp(t, b, src, c)
	err := a.Run(context.Background())
	if !errors.Is(err, ErrActionChainOverflow) {
		t.Fatalf("Run = %v, want ErrActionChainOverflow", err)
	}
	if b.rawExits != 1 {
		t.Error("terminal not restored after fatal chain overflow")
	}
}

func TestSetupFailureLeavesTerminalUntouched(t *testing.T) {
	b := &testBackend{rawErr: errors.New("raw mode unavailable")}
	c := newTestComponent()

	_, err := New(Config{Backend: b, Root: c, Source: &scriptedSource{}})
	if !errors.Is(err, ErrSetup) {
		t.Fatalf("New = %v, want ErrSetup", err)
	}
	if b.rawEnters != 0 || b.altEnters != 0 {
		t.Errorf("terminal mutated on setup failure: %+v", b)
	}
	if c.inits != 0 {
		t.Error("component initialized despite setup failure")
	}
}

func TestInitFailureRestoresTerminal(t *testing.T) {
	b := &testBackend{}
	c := newTestComponent()
	c.initErr = errors.New("resources missing")
	src := &scriptedSource{}

	_, err := New(Config{Backend: b, Root: c, Source: src})
	if !errors.Is(err, ErrInit) {
		t.Fatalf("New = %v, want ErrInit", err)
	}
	if b.rawExits != 1 || b.altExits != 1 {
		t.Errorf("terminal not restored after init failure: %+v", b)
	}
	if !src.closed {
		t.Error("event source left running after init failure")
	}
}

func TestNopEventsStillDispatchOnce(t *testing.T) {
	b := &testBackend{}
	src := &scriptedSource{events: []event.Event{key('z')}}
	c := newTestComponent()

	a := newTestApp(t, b, src, c)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The Nop from the ignored key plus the Nop for the terminating
	// quit event: each event dispatches exactly one action.
	if c.updates != 2 {
		t.Errorf("updates = %d, want 2", c.updates)
	}
}

func TestContextCancellationStopsLoop(t *testing.T) {
	b := &testBackend{}
	src := event.NewSource(0, nil) // no producers; Next blocks until ctx
	c := newTestComponent()

	a := newTestApp(t, b, src, c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if b.rawExits != 1 {
		t.Error("terminal not restored after cancellation")
	}
}
