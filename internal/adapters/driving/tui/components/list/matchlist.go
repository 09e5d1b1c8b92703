// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// Row is one matched frame as displayed in the list.
type Row struct {
	Match domain.FrameMatch

	// Graph is the name of the flamegraph the frame belongs to.
	Graph string
}

// MatchList displays matched frames in navigation order.
// Selection is owned by the search session; the list only mirrors it.
type MatchList struct {
	rows     []Row
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewMatchList creates a new match list component.
func NewMatchList(s *styles.Styles) *MatchList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &MatchList{
		selected: domain.NoCursor,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// View renders the match list.
func (l *MatchList) View() string {
	if len(l.rows) == 0 {
		return l.styles.Muted.Render("No matches")
	}

	visible := l.height
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.rows) {
		end = len(l.rows)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (l *MatchList) renderRow(index int) string {
	row := l.rows[index]
	frame := row.Match.Frame

	base := l.styles.Normal
	indicator := "  "
	if index == l.selected {
		base = l.styles.Selected
		indicator = "> "
	}

	name := frame.Name
	ranges := row.Match.Ranges
	maxName := l.width - 24
	if maxName < 10 {
		maxName = 10
	}
	if len(name) > maxName {
		name = name[:maxName-3] + "..."
		ranges = clip(ranges, maxName-3)
	}

	meta := fmt.Sprintf("  %s d%d", row.Graph, frame.Depth)
	return base.Render(indicator) + l.styles.Highlight(name, ranges, base) + l.styles.Muted.Render(meta)
}

// clip drops or shortens ranges past n bytes.
func clip(ranges []domain.MatchRange, n int) []domain.MatchRange {
	out := make([]domain.MatchRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Start >= n {
			continue
		}
		if r.End > n {
			r.End = n
		}
		out = append(out, r)
	}
	return out
}

// SetRows replaces the displayed rows.
func (l *MatchList) SetRows(rows []Row) {
	l.rows = rows
	if l.selected >= len(rows) {
		l.selected = domain.NoCursor
	}
}

// Rows returns the displayed rows.
func (l *MatchList) Rows() []Row {
	return l.rows
}

// Selected returns the selected index, or domain.NoCursor.
func (l *MatchList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index. Out of range values clear the selection.
func (l *MatchList) SetSelected(index int) {
	if index < 0 || index >= len(l.rows) {
		l.selected = domain.NoCursor
		return
	}
	l.selected = index
}

// SetDimensions sets the component dimensions.
func (l *MatchList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of rows.
func (l *MatchList) Count() int {
	return len(l.rows)
}

// IsEmpty returns whether the list is empty.
func (l *MatchList) IsEmpty() bool {
	return len(l.rows) == 0
}
