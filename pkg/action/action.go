// Package action defines the intents components emit in response to
// events. Actions are the only way component logic mutates application
// state: an event is translated to exactly one action, and applying an
// action may yield one follow-up action, drained synchronously by the
// loop before the next render.
//
// Applications extend the set by declaring their own types that
// implement Action; the loop never inspects actions beyond nil checks,
// so new variants need no central registration.
package action

// Action is one intended state change. The built-in variants cover the
// loop's own needs; components declare their own types for everything
// else. A nil Action means "no follow-up" in Update results; HandleEvent
// never returns nil, it returns Nop.
type Action interface{}

// Nop is the explicit "nothing to do" action. HandleEvent returns Nop
// for events a component ignores, keeping the dispatch contract total:
// the loop never has to distinguish a missing action from an ignored
// event.
type Nop struct{}

// Render requests a repaint with no other state change.
type Render struct{}

// Quit requests loop termination.
type Quit struct{}

// Resize records new terminal dimensions so components can rebuild
// cached layout.
type Resize struct {
	Width  int
	Height int
}

// Error carries a failure discovered while applying an action. Errors
// inside the dispatch path flow through actions rather than unwinding
// the loop; a component typically displays the message and keeps
// running.
type Error struct {
	Msg string
}
