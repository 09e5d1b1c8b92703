package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

func TestBuildCorpus_ConcatenatesInOrder(t *testing.T) {
	g0 := graphOf("a", "b")
	g1 := graphOf("c")

	corpus := BuildCorpus(g0, g1)

	require.Equal(t, 3, corpus.Len())
	assert.Equal(t, []string{"a", "b", "c"}, corpus.Names())
	assert.Equal(t, 0, corpus.Frames[0].Graph)
	assert.Equal(t, 0, corpus.Frames[1].Graph)
	assert.Equal(t, 1, corpus.Frames[2].Graph)
}

func TestBuildCorpus_DoesNotMutateGraphs(t *testing.T) {
	g0 := graphOf("a")
	g1 := graphOf("b")

	BuildCorpus(g0, g1)

	assert.Equal(t, 0, g1.Frames[0].Graph)
}

func TestBuildCorpus_Empty(t *testing.T) {
	corpus := BuildCorpus()

	require.NotNil(t, corpus)
	assert.Equal(t, 0, corpus.Len())
}

func TestCorpusBuilder_MemoizesOnSetIdentity(t *testing.T) {
	builder := NewCorpusBuilder()
	set := domain.NewProfileSet(graphOf("a", "b"))

	first := builder.Build(set)
	second := builder.Build(set)
	assert.Same(t, first, second)

	// Same graphs in a new set is new input.
	other := domain.NewProfileSet(set.Graphs...)
	third := builder.Build(other)
	assert.NotSame(t, first, third)
	assert.Equal(t, first.Frames, third.Frames)
}

func TestCorpusBuilder_NilSet(t *testing.T) {
	builder := NewCorpusBuilder()

	corpus := builder.Build(nil)

	require.NotNil(t, corpus)
	assert.Equal(t, 0, corpus.Len())
}

func TestCorpusBuilder_DistinctOccurrences(t *testing.T) {
	builder := NewCorpusBuilder()
	set := domain.NewProfileSet(graphOf("foo", "foo"), graphOf("foo"))

	corpus := builder.Build(set)

	ids := map[string]bool{}
	for _, f := range corpus.Frames {
		ids[f.SearchID()] = true
	}
	assert.Len(t, ids, 3)
}
