package component

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/termpulse/pkg/action"
	"gitlab.com/tinyland/lab/termpulse/pkg/components"
	"gitlab.com/tinyland/lab/termpulse/pkg/display"
	"gitlab.com/tinyland/lab/termpulse/pkg/event"
	"gitlab.com/tinyland/lab/termpulse/pkg/sysload"
)

// Actions emitted by Home beyond the built-ins. SelectItem moves the
// list selection; its update yields a follow-up ScrollIntoView, which
// adjusts the viewport. This is the in-tree example of a chained
// dispatch round.
type (
	// SelectItem sets the list selection to Index (clamped).
	SelectItem struct{ Index int }

	// ScrollIntoView scrolls the list viewport so Index is visible.
	ScrollIntoView struct{ Index int }

	// Refresh advances the tick counter and resamples host load.
	Refresh struct{}
)

// LoadSampler is the slice of sysload.Sampler that Home needs; tests
// substitute a fixed-value fake.
type LoadSampler interface {
	Prime() error
	Sample() (sysload.Load, error)
}

// Theme sets Home's accent colors as hex strings. Zero values fall
// back to the built-in palette.
type Theme struct {
	Accent string
	Dim    string
	Warn   string
	Crit   string
}

func (t Theme) withDefaults() Theme {
	if t.Accent == "" {
		t.Accent = "#7C3AED"
	}
	if t.Dim == "" {
		t.Dim = "#6B7280"
	}
	if t.Warn == "" {
		t.Warn = "#FF9800"
	}
	if t.Crit == "" {
		t.Crit = "#F44336"
	}
	return t
}

// Home is the reference root component: a scrollable status list, tick
// counter, and host-load gauges. It exists so the runtime ships with
// one complete Component and so the loop has something to run out of
// the box.
type Home struct {
	running  bool
	ticks    int
	width    int
	height   int
	selected int
	scroll   int
	items    []string
	load     sysload.Load
	loadErr  string
	sampler  LoadSampler

	theme       Theme
	titleStyle  lipgloss.Style
	hintStyle   lipgloss.Style
	selectStyle lipgloss.Style
	errStyle    lipgloss.Style
}

// NewHome returns a Home sampling host load from sampler. A nil
// sampler disables the gauges.
func NewHome(sampler LoadSampler, theme Theme) *Home {
	theme = theme.withDefaults()
	return &Home{
		sampler:     sampler,
		theme:       theme,
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Accent)),
		hintStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Dim)),
		selectStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Accent)),
		errStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Crit)),
		items: []string{
			"event source",
			"dispatch loop",
			"display handle",
			"input decoder",
			"tick producer",
			"signal producer",
			"frame buffer",
			"panic guard",
		},
	}
}

// Init implements Component. A failing sampler degrades the gauges to
// an inline error instead of aborting startup; the loop itself does
// not depend on host metrics.
func (h *Home) Init() error {
	h.running = true
	if h.sampler != nil {
		if err := h.sampler.Prime(); err != nil {
			h.loadErr = err.Error()
			h.sampler = nil
		}
	}
	return nil
}

// Running implements Component.
func (h *Home) Running() bool {
	return h.running
}

// HandleEvent implements Component. Pure translation: no state is
// touched here, only in Update.
func (h *Home) HandleEvent(ev event.Event) action.Action {
	switch ev := ev.(type) {
	case event.TickEvent:
		return Refresh{}
	case event.ResizeEvent:
		return action.Resize{Width: ev.Width, Height: ev.Height}
	case event.QuitEvent:
		return action.Quit{}
	case event.KeyEvent:
		return h.translateKey(ev)
	default:
		return action.Nop{}
	}
}

func (h *Home) translateKey(k event.KeyEvent) action.Action {
	switch {
	case k.Code == event.KeyEsc,
		k.Code == event.KeyRune && k.Rune == 'q' && k.Mods == event.ModNone,
		k.Code == event.KeyRune && k.Rune == 'c' && k.Mods.Has(event.ModCtrl):
		return action.Quit{}
	case k.Code == event.KeyDown,
		k.Code == event.KeyRune && k.Rune == 'j':
		return SelectItem{Index: h.selected + 1}
	case k.Code == event.KeyUp,
		k.Code == event.KeyRune && k.Rune == 'k':
		return SelectItem{Index: h.selected - 1}
	case k.Code == event.KeyRune && k.Rune == 'r':
		return action.Render{}
	default:
		return action.Nop{}
	}
}

// Update implements Component.
func (h *Home) Update(act action.Action) action.Action {
	switch act := act.(type) {
	case action.Quit:
		h.running = false
	case action.Resize:
		h.width, h.height = act.Width, act.Height
	case action.Error:
		h.loadErr = act.Msg
	case Refresh:
		h.ticks++
		if h.sampler != nil {
			load, err := h.sampler.Sample()
			if err != nil {
				return action.Error{Msg: err.Error()}
			}
			h.load = load
		}
	case SelectItem:
		h.selected = clamp(act.Index, 0, len(h.items)-1)
		return ScrollIntoView{Index: h.selected}
	case ScrollIntoView:
		h.scrollTo(act.Index)
	}
	return nil
}

// scrollTo moves the viewport so the item at idx is visible.
func (h *Home) scrollTo(idx int) {
	view := h.viewRows()
	if view <= 0 {
		return
	}
	if idx < h.scroll {
		h.scroll = idx
	}
	if idx >= h.scroll+view {
		h.scroll = idx - view + 1
	}
}

// viewRows is the number of list rows the last known height allows:
// total height minus header, gauges, and footer.
func (h *Home) viewRows() int {
	rows := h.height - 5
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Render implements Component. Pure read of current state.
func (h *Home) Render(f *display.Frame, area display.Rect) {
	if area.W <= 0 || area.H <= 0 {
		return
	}

	y := area.Y
	f.SetLine(area.X, y, h.titleStyle.Render("termpulse")+
		h.hintStyle.Render(fmt.Sprintf("  tick %d", h.ticks)))
	y++

	view := area.H - 5
	if view < 1 {
		view = 1
	}
	for i := 0; i < view && h.scroll+i < len(h.items); i++ {
		idx := h.scroll + i
		line := "  " + h.items[idx]
		if idx == h.selected {
			line = h.selectStyle.Render("> " + h.items[idx])
		}
		f.SetLine(area.X, y+i, line)
	}
	y += view

	gaugeW := area.W - 2
	if gaugeW > 48 {
		gaugeW = 48
	}
	style := components.GaugeStyle{
		Filled: "#4CAF50",
		Empty:  "#333333",
		Warn:   h.theme.Warn,
		Crit:   h.theme.Crit,
		WarnAt: 0.7,
		CritAt: 0.9,
	}
	if h.loadErr != "" {
		f.SetLine(area.X, y, h.errStyle.Render("load: "+h.loadErr))
	} else {
		f.SetLine(area.X, y, components.Gauge("cpu", h.load.CPU, gaugeW, 4, style))
		f.SetLine(area.X, y+1, components.Gauge("mem", h.load.Memory, gaugeW, 4, style))
	}

	f.SetLine(area.X, area.Y+area.H-1,
		h.hintStyle.Render("j/k:select  r:redraw  q:quit"))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
