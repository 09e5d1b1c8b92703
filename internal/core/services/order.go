package services

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// SortDirection selects ascending or descending order.
type SortDirection int

// Sort directions.
const (
	SortAsc SortDirection = iota
	SortDesc
)

// NumericSort compares two values in the given direction.
// NaN marks an unknown value; unknown values sort after every known
// value in both directions. It returns -1, 0 or +1.
func NumericSort(a, b float64, dir SortDirection) int {
	aUnknown, bUnknown := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aUnknown && bUnknown:
		return 0
	case aUnknown:
		return 1
	case bUnknown:
		return -1
	}
	if dir == SortDesc {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}

// Ordering linearises match results into navigation order: top-down
// and left-to-right. The last ordering is reused while the same
// *MatchResult is passed in.
type Ordering struct {
	memo refMemo[*domain.MatchResult, []domain.Frame]
}

// NewOrdering creates a new ordering.
func NewOrdering() *Ordering {
	return &Ordering{}
}

// Order returns the matched frames sorted by start, then depth.
// The returned slice is shared between calls and must not be modified.
func (o *Ordering) Order(results *domain.MatchResult) []domain.Frame {
	return o.memo.get(results, OrderFrames)
}

// OrderFrames sorts the matched frames without memoization.
func OrderFrames(results *domain.MatchResult) []domain.Frame {
	if results.Len() == 0 {
		return []domain.Frame{}
	}

	frames := make([]domain.Frame, 0, results.Len())
	for _, m := range results.Matches {
		frames = append(frames, m.Frame)
	}
	slices.SortFunc(frames, CompareFrames)
	return frames
}

// CompareFrames orders frames by start, then depth. Graph index and
// search identity break the remaining ties so the order is total.
func CompareFrames(a, b domain.Frame) int {
	if c := NumericSort(a.Start, b.Start, SortAsc); c != 0 {
		return c
	}
	if c := NumericSort(depthValue(a), depthValue(b), SortAsc); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Graph, b.Graph); c != 0 {
		return c
	}
	return strings.Compare(a.SearchID(), b.SearchID())
}

func depthValue(f domain.Frame) float64 {
	if d, ok := f.KnownDepth(); ok {
		return float64(d)
	}
	return math.NaN()
}
