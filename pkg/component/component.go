// Package component defines the contract every UI component satisfies
// and ships Home, the reference root component.
//
// The loop in pkg/app is generic over this contract: it never knows
// what a component renders, only that events go in, actions come out,
// and actions are applied before the next frame. Component state is
// touched exclusively by the loop goroutine, so implementations need
// no internal locking.
package component

import (
	"gitlab.com/tinyland/lab/termpulse/pkg/action"
	"gitlab.com/tinyland/lab/termpulse/pkg/display"
	"gitlab.com/tinyland/lab/termpulse/pkg/event"
)

// Component is the capability contract for a unit of UI state.
type Component interface {
	// Init runs one-time setup before the loop starts. A non-nil error
	// aborts startup; the loop never partially starts.
	Init() error

	// HandleEvent translates an external event into an intended action.
	// It must not block and must not return nil: events the component
	// ignores map to action.Nop.
	HandleEvent(ev event.Event) action.Action

	// Update applies an action to component state and optionally yields
	// exactly one follow-up action, or nil when the chain ends. The
	// loop drains follow-ups synchronously before rendering.
	Update(act action.Action) action.Action

	// Render draws current state into the frame. It is a pure read:
	// no state mutation, safe to call every iteration.
	Render(f *display.Frame, area display.Rect)

	// Running reports whether the component wants the loop to continue.
	// Once false, the loop exits after the current dispatch round.
	Running() bool
}
