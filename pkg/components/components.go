// Package components provides the small set of text-rendering helpers
// the reference components draw with: ANSI styling, width-aware
// padding and truncation, and a horizontal gauge with sub-cell
// precision.
package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Fg produces a 24-bit foreground escape sequence from a hex color
// like "#ff5500". Returns "" for malformed input so callers can apply
// colors unconditionally.
func Fg(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// Bold wraps s in ANSI bold sequences.
func Bold(s string) string {
	return "\x1b[1m" + s + "\x1b[22m"
}

// Dim wraps s in ANSI faint sequences.
func Dim(s string) string {
	return "\x1b[2m" + s + "\x1b[22m"
}

// Reset is the sequence that clears all styling.
const Reset = "\x1b[0m"

// Width returns the visible cell width of s, ignoring ANSI sequences
// and counting wide runes as 2.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// Truncate clips s to at most width visible cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}

// PadRight extends s with spaces to exactly width visible cells,
// truncating if it is already wider.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if pad := width - Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// Eighth-block runes for sub-cell gauge fill, empty through full.
var gaugeBlocks = [9]rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

// GaugeStyle sets the colors of a gauge. Warn and Crit, when non-empty,
// replace Filled once the ratio crosses the matching threshold.
type GaugeStyle struct {
	Filled    string  // hex fill color
	Empty     string  // hex color of the unfilled portion
	Warn      string  // fill color at or above WarnAt
	Crit      string  // fill color at or above CritAt
	WarnAt    float64 // warn threshold in [0,1]
	CritAt    float64 // crit threshold in [0,1]
	NoPercent bool    // suppress the trailing percent label
}

// Gauge renders a labeled horizontal bar for ratio in [0,1] at the
// given total width. The label is padded to labelWidth cells and the
// bar fills the remaining space, minus the percent label.
func Gauge(label string, ratio float64, width, labelWidth int, style GaugeStyle) string {
	ratio = math.Max(0, math.Min(1, ratio))

	var b strings.Builder
	if labelWidth > 0 {
		b.WriteString(PadRight(label, labelWidth))
	}

	pct := ""
	if !style.NoPercent {
		pct = fmt.Sprintf(" %3d%%", int(math.Round(ratio*100)))
	}

	barW := width - labelWidth - Width(pct)
	if barW < 1 {
		barW = 1
	}

	fill := style.Filled
	if style.CritAt > 0 && ratio >= style.CritAt && style.Crit != "" {
		fill = style.Crit
	} else if style.WarnAt > 0 && ratio >= style.WarnAt && style.Warn != "" {
		fill = style.Warn
	}

	cells := ratio * float64(barW)
	full := int(cells)
	frac := int(math.Round((cells - float64(full)) * 8))
	if frac == 8 {
		full++
		frac = 0
	}

	b.WriteString(Fg(fill))
	b.WriteString(strings.Repeat(string(gaugeBlocks[8]), full))
	rest := barW - full
	if frac > 0 && rest > 0 {
		b.WriteRune(gaugeBlocks[frac])
		rest--
	}
	b.WriteString(Fg(style.Empty))
	b.WriteString(strings.Repeat(string(gaugeBlocks[8]), rest))
	b.WriteString(Reset)
	b.WriteString(pct)

	return b.String()
}

// parseHex parses "#RRGGBB" or "RRGGBB" into components.
func parseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
