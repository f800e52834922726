package display

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Rect is a rectangular region of the frame in character cells.
type Rect struct {
	X, Y, W, H int
}

// Inset shrinks the rect by n cells on every side, clamping at empty.
func (r Rect) Inset(n int) Rect {
	r.X += n
	r.Y += n
	r.W -= 2 * n
	r.H -= 2 * n
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// Frame is the buffered rendering surface for one draw cycle. A
// component writes styled lines into it; the Display flushes the whole
// frame to the terminal in a single write. Lines may contain ANSI
// styling; all width accounting is done on display width, not bytes.
type Frame struct {
	width  int
	height int
	rows   []string
}

// NewFrame returns an empty frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Frame{
		width:  width,
		height: height,
		rows:   make([]string, height),
	}
}

// Bounds returns the full frame area.
func (f *Frame) Bounds() Rect {
	return Rect{W: f.width, H: f.height}
}

// SetLine writes s starting at column x of row y, replacing the
// remainder of the row. Content is clipped to the frame width; writes
// outside the frame are ignored. The column offset and clipping are
// ANSI-aware, so styled strings land where their visible cells say.
func (f *Frame) SetLine(x, y int, s string) {
	if y < 0 || y >= f.height || x < 0 || x >= f.width {
		return
	}
	prefix := ansi.Truncate(f.rows[y], x, "")
	if pad := x - ansi.StringWidth(prefix); pad > 0 {
		prefix += strings.Repeat(" ", pad)
	}
	f.rows[y] = prefix + ansi.Truncate(s, f.width-x, "")
}

// Blit writes a multi-line block at the top-left of area, clipping to
// both the area and the frame.
func (f *Frame) Blit(area Rect, block string) {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if i >= area.H {
			break
		}
		f.SetLine(area.X, area.Y+i, ansi.Truncate(line, area.W, ""))
	}
}

// flush serializes the frame for a raw-mode terminal: cursor home,
// then every row padded out with an erase-to-end so stale cells from
// the previous frame never bleed through.
func (f *Frame) flush() string {
	var b strings.Builder
	b.WriteString("\x1b[H") // cursor home
	for i, row := range f.rows {
		b.WriteString(row)
		b.WriteString("\x1b[K") // erase to end of line
		if i < len(f.rows)-1 {
			b.WriteString("\r\n")
		}
	}
	return b.String()
}
