package domain

import (
	"math"
	"strconv"
	"strings"
)

// Frame is one occurrence of a function in a flamegraph.
// Two frames with the same name at different call sites or times are
// distinct frames with distinct search identities.
type Frame struct {
	// Name is the display name of the function.
	Name string

	// Start is the offset of the frame in sample units.
	// NaN marks an unknown start.
	Start float64

	// End is the offset where the frame ends.
	End float64

	// Depth is the nesting level, 0 for outermost frames.
	// A negative depth marks an unknown depth.
	Depth int

	// Graph is the index of the owning flamegraph within its corpus.
	Graph int
}

// SearchID returns the key that identifies this frame occurrence in a
// MatchResult. It is derived from frame attributes, never from memory
// addresses, so equal-looking frames at different positions stay distinct.
func (f Frame) SearchID() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(f.Graph))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(f.Depth))
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(f.Start, 'g', -1, 64))
	b.WriteByte(':')
	b.WriteString(f.Name)
	return b.String()
}

// KnownStart returns the start offset and whether it is known.
func (f Frame) KnownStart() (float64, bool) {
	if math.IsNaN(f.Start) {
		return 0, false
	}
	return f.Start, true
}

// KnownDepth returns the depth and whether it is known.
func (f Frame) KnownDepth() (int, bool) {
	if f.Depth < 0 {
		return 0, false
	}
	return f.Depth, true
}

// Width returns the extent of the frame in sample units.
func (f Frame) Width() float64 {
	return f.End - f.Start
}

// Flamegraph is a profile laid out as a call tree.
// Frames are stored in depth-first pre-order.
type Flamegraph struct {
	// ID identifies the profile the graph was built from.
	ID string

	// Name is a human-readable label, usually the file name.
	Name string

	// Frames holds every node of the call tree except the synthetic root.
	Frames []Frame

	// Total is the sum of all sample values.
	Total float64
}

// ProfileSet is an ordered collection of flamegraphs searched together.
// It is compared by pointer: a new set means the corpus must be rebuilt.
type ProfileSet struct {
	Graphs []*Flamegraph
}

// NewProfileSet creates a profile set from the given graphs.
// Nil graphs are skipped.
func NewProfileSet(graphs ...*Flamegraph) *ProfileSet {
	set := &ProfileSet{Graphs: make([]*Flamegraph, 0, len(graphs))}
	for _, g := range graphs {
		if g != nil {
			set.Graphs = append(set.Graphs, g)
		}
	}
	return set
}

// Len returns the number of graphs in the set.
func (s *ProfileSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Graphs)
}

// Corpus is the flat, ordered sequence of frames searched together.
// Frames of graph i precede frames of graph i+1.
type Corpus struct {
	Frames []Frame
}

// Len returns the number of frames in the corpus.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Frames)
}

// Names returns the frame names in corpus order.
func (c *Corpus) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.Frames))
	for i := range c.Frames {
		names[i] = c.Frames[i].Name
	}
	return names
}
