package services

import (
	"slices"
	"strings"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// callNode is a node of the merged call tree.
type callNode struct {
	name     string
	weight   int64
	children map[string]*callNode
}

func (n *callNode) child(name string) *callNode {
	if n.children == nil {
		n.children = make(map[string]*callNode)
	}
	c, ok := n.children[name]
	if !ok {
		c = &callNode{name: name}
		n.children[name] = c
	}
	return c
}

func (n *callNode) sortedChildren() []*callNode {
	out := make([]*callNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *callNode) int {
		return strings.Compare(a.name, b.name)
	})
	return out
}

// BuildFlamegraph lays out a profile as a flamegraph.
//
// Stacks are merged into a call tree whose siblings are ordered by name.
// Each frame starts where its preceding sibling ended, offset by its
// parent's start, and is as wide as the samples passing through it.
// Frames are emitted in depth-first pre-order.
func BuildFlamegraph(id string, profile *domain.StackProfile) *domain.Flamegraph {
	graph := &domain.Flamegraph{ID: id}
	if profile == nil {
		return graph
	}
	graph.Name = profile.Name

	root := &callNode{}
	for _, sample := range profile.Samples {
		if sample.Value <= 0 || len(sample.Stack) == 0 {
			continue
		}
		root.weight += sample.Value
		node := root
		for _, name := range sample.Stack {
			node = node.child(name)
			node.weight += sample.Value
		}
	}

	graph.Total = float64(root.weight)
	graph.Frames = layoutChildren(root, 0, 0, nil)
	return graph
}

func layoutChildren(parent *callNode, start int64, depth int, frames []domain.Frame) []domain.Frame {
	offset := start
	for _, c := range parent.sortedChildren() {
		frames = append(frames, domain.Frame{
			Name:  c.name,
			Start: float64(offset),
			End:   float64(offset + c.weight),
			Depth: depth,
		})
		frames = layoutChildren(c, offset, depth+1, frames)
		offset += c.weight
	}
	return frames
}
