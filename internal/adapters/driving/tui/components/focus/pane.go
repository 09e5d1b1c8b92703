// Package focus renders the frame the search cursor is on.
package focus

import (
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
)

// Ensure Pane implements the FrameFocuser interface.
var _ driven.FrameFocuser = (*Pane)(nil)

// Pane shows details of the focused frame and where it sits in its graph.
type Pane struct {
	styles *styles.Styles
	set    *domain.ProfileSet
	frame  domain.Frame
	intent domain.FocusIntent
	has    bool
	calls  int
	width  int
}

// NewPane creates an empty focus pane.
func NewPane(s *styles.Styles) *Pane {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Pane{styles: s, intent: domain.FocusCenter, width: 80}
}

// FocusFrame records the frame to display.
func (p *Pane) FocusFrame(frame domain.Frame, intent domain.FocusIntent) {
	p.frame = frame
	p.intent = intent
	p.has = true
	p.calls++
}

// SetProfiles sets the graphs frames are resolved against and drops the
// focused frame, which belonged to the previous set.
func (p *Pane) SetProfiles(set *domain.ProfileSet) {
	p.set = set
	p.has = false
}

// Clear drops the focused frame.
func (p *Pane) Clear() {
	p.has = false
}

// Focused returns the focused frame, if any.
func (p *Pane) Focused() (domain.Frame, domain.FocusIntent, bool) {
	return p.frame, p.intent, p.has
}

// Calls returns how many times FocusFrame was called.
func (p *Pane) Calls() int {
	return p.calls
}

// SetWidth sets the pane width.
func (p *Pane) SetWidth(width int) {
	p.width = width
}

// View renders the pane.
func (p *Pane) View() string {
	if !p.has {
		return p.styles.Pane.Width(p.innerWidth()).Render(p.styles.Muted.Render("No frame selected"))
	}

	f := p.frame
	graphName, total := p.graph(f.Graph)

	lines := []string{
		p.styles.Subtitle.Render(f.Name),
		p.styles.Muted.Render(fmt.Sprintf("%s  depth %s  %s", graphName, depthText(f), p.extentText(total))),
		p.bar(total),
	}
	return p.styles.Pane.Width(p.innerWidth()).Render(strings.Join(lines, "\n"))
}

func (p *Pane) innerWidth() int {
	w := p.width - 4
	if w < 10 {
		w = 10
	}
	return w
}

func (p *Pane) graph(index int) (string, float64) {
	if p.set == nil || index < 0 || index >= p.set.Len() {
		return "?", 0
	}
	g := p.set.Graphs[index]
	return g.Name, g.Total
}

func depthText(f domain.Frame) string {
	if d, ok := f.KnownDepth(); ok {
		return fmt.Sprint(d)
	}
	return "?"
}

func (p *Pane) extentText(total float64) string {
	start, ok := p.frame.KnownStart()
	if !ok {
		return "position unknown"
	}
	text := fmt.Sprintf("%g..%g", start, p.frame.End)
	if total > 0 {
		text += fmt.Sprintf(" (%.1f%%)", 100*p.frame.Width()/total)
	}
	return text
}

// bar draws the frame's extent. With FocusSelect the bar spans the whole
// graph; with FocusCenter it is zoomed so the frame fills the middle half.
func (p *Pane) bar(total float64) string {
	width := p.innerWidth() - 2
	start, ok := p.frame.KnownStart()
	if !ok || total <= 0 {
		return p.styles.EmptyBar.Render(strings.Repeat(" ", width))
	}

	lo, hi := 0.0, total
	if p.intent == domain.FocusCenter {
		pad := p.frame.Width() / 2
		lo, hi = start-pad, p.frame.End+pad
	}
	span := hi - lo
	if span <= 0 {
		return p.styles.FlameBar.Render(strings.Repeat(" ", width))
	}

	from := int(math.Floor((start - lo) / span * float64(width)))
	to := int(math.Ceil((p.frame.End - lo) / span * float64(width)))
	from = clamp(from, 0, width)
	to = clamp(to, from, width)
	if to == from && to < width {
		to++
	}

	return p.styles.EmptyBar.Render(strings.Repeat(" ", from)) +
		p.styles.FlameBar.Render(strings.Repeat(" ", to-from)) +
		p.styles.EmptyBar.Render(strings.Repeat(" ", width-to))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
