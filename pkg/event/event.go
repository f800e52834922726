// Package event defines the external occurrences fed into the runtime
// loop (keyboard input, terminal resizes, periodic ticks, and
// termination requests) and the Source that merges their producers
// into a single ordered stream.
//
// Events are transient values: the loop consumes each one exactly once
// and never stores it past the current iteration.
package event

import "time"

// Event is one external occurrence delivered to the application loop.
// The concrete variants are TickEvent, KeyEvent, ResizeEvent, and
// QuitEvent.
type Event interface {
	isEvent()
}

// TickEvent fires periodically at the Source's configured tick rate.
// It drives time-based redraws (spinners, stale-data checks).
type TickEvent struct {
	Time time.Time
}

// KeyEvent is a single decoded keypress.
type KeyEvent struct {
	Code KeyCode   // which key
	Rune rune      // the character for KeyRune, 0 otherwise
	Mods Modifiers // held modifiers
}

// ResizeEvent reports new terminal dimensions in character cells.
type ResizeEvent struct {
	Width  int
	Height int
}

// QuitEvent is a terminal event: the source was closed, the input
// stream ended, or the process received SIGINT/SIGTERM. The loop exits
// after the dispatch round that observes it.
type QuitEvent struct{}

func (TickEvent) isEvent()   {}
func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}
func (QuitEvent) isEvent()   {}

// KeyCode identifies a key. Printable characters use KeyRune with the
// character in KeyEvent.Rune; everything else has a dedicated code.
type KeyCode int

// Key codes produced by the raw-input decoder.
const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
)

// Modifiers is a bitmask of modifier keys held during a KeyEvent.
type Modifiers int

// Modifier bits.
const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift

	ModNone Modifiers = 0
)

// Has reports whether all bits in m are set.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}
