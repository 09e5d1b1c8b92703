package services

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

func corpusOf(names ...string) *domain.Corpus {
	return BuildCorpus(graphOf(names...))
}

func TestMatchEngine_EmptyQuery(t *testing.T) {
	engine := NewMatchEngine(nil)

	assert.Nil(t, engine.Match("", corpusOf("foo"), nil))
}

func TestMatchEngine_EmptyCorpus(t *testing.T) {
	reporter := &mockReporter{}
	engine := NewMatchEngine(reporter)

	assert.Nil(t, engine.Match("/foo/", BuildCorpus(), nil))
	assert.Nil(t, engine.Match("foo", BuildCorpus(), nil))
	assert.Empty(t, reporter.messages)
}

func TestMatchEngine_LiteralAnchored(t *testing.T) {
	corpus := corpusOf("foo", "bar", "foobar")
	engine := NewMatchEngine(nil)

	result := engine.Match("/^foo$/", corpus, nil)

	require.NotNil(t, result)
	require.Equal(t, 1, result.Len())
	m, ok := result.Get(corpus.Frames[0].SearchID())
	require.True(t, ok)
	assert.Equal(t, "foo", m.Frame.Name)
	assert.Equal(t, []domain.MatchRange{{Start: 0, End: 3}}, m.Ranges)
}

func TestMatchEngine_LiteralAllOccurrences(t *testing.T) {
	corpus := corpusOf("foo::foo::bar")
	engine := NewMatchEngine(nil)

	result := engine.Match("/foo/", corpus, nil)

	m, ok := result.Get(corpus.Frames[0].SearchID())
	require.True(t, ok)
	assert.Equal(t, []domain.MatchRange{{Start: 0, End: 3}, {Start: 5, End: 8}}, m.Ranges)
}

// TestMatchEngine_LiteralRangesRematch tests every literal range re-matches its pattern
func TestMatchEngine_LiteralRangesRematch(t *testing.T) {
	corpus := corpusOf("runtime.mallocgc", "main.run", "runtime.gcBgMarkWorker", "syscall.Syscall6")
	engine := NewMatchEngine(nil)
	pattern := regexp.MustCompile("(?i)[a-z]+c")

	result := engine.Match("/[a-z]+c/i", corpus, nil)

	require.NotNil(t, result)
	for _, m := range result.Matches {
		name := strings.TrimSpace(m.Frame.Name)
		for _, r := range m.Ranges {
			assert.True(t, pattern.MatchString(name[r.Start:r.End]), "%q[%d:%d]", name, r.Start, r.End)
		}
	}
}

func TestMatchEngine_LiteralNoMatchIsNil(t *testing.T) {
	engine := NewMatchEngine(nil)

	assert.Nil(t, engine.Match("/zzz/", corpusOf("foo", "bar"), nil))
}

func TestMatchEngine_CompileFailureReportedOnce(t *testing.T) {
	reporter := &mockReporter{}
	engine := NewMatchEngine(reporter)

	result := engine.Match("/[/", corpusOf("foo", "bar", "[baz"), nil)

	assert.Nil(t, result)
	assert.Len(t, reporter.messages, 1)
}

func TestMatchEngine_MalformedReportedOnce(t *testing.T) {
	reporter := &mockReporter{}
	engine := NewMatchEngine(reporter)

	assert.Nil(t, engine.Match("//", corpusOf("foo"), nil))
	assert.Nil(t, engine.Match("/foo/y", corpusOf("foo"), nil))
	assert.Len(t, reporter.messages, 2)
}

func TestMatchEngine_NilReporter(t *testing.T) {
	engine := NewMatchEngine(nil)

	assert.NotPanics(t, func() {
		engine.Match("/(/", corpusOf("foo"), nil)
	})
}

func TestMatchEngine_Approximate(t *testing.T) {
	corpus := corpusOf("foo", "bar", "foobar")
	engine := NewMatchEngine(nil)
	index := (&mockIndexFactory{}).NewIndex(corpus.Frames)

	result := engine.Match("foo", corpus, index)

	require.NotNil(t, result)
	assert.Equal(t, 2, result.Len())
	_, ok := result.Get(corpus.Frames[0].SearchID())
	assert.True(t, ok)
	_, ok = result.Get(corpus.Frames[2].SearchID())
	assert.True(t, ok)
	_, ok = result.Get(corpus.Frames[1].SearchID())
	assert.False(t, ok)
}

func TestMatchEngine_ApproximateWithoutIndex(t *testing.T) {
	engine := NewMatchEngine(nil)

	assert.Nil(t, engine.Match("foo", corpusOf("foo"), nil))
}

func TestMatchEngine_ApproximateNoHitsIsNil(t *testing.T) {
	corpus := corpusOf("foo")
	engine := NewMatchEngine(nil)
	index := (&mockIndexFactory{}).NewIndex(corpus.Frames)

	assert.Nil(t, engine.Match("qqq", corpus, index))
}

// TestMatchEngine_TrimAsymmetry pins down that literal ranges index into the
// trimmed name while approximate ranges index into the untrimmed name.
func TestMatchEngine_TrimAsymmetry(t *testing.T) {
	corpus := corpusOf("  foo")
	engine := NewMatchEngine(nil)
	index := (&mockIndexFactory{}).NewIndex(corpus.Frames)
	id := corpus.Frames[0].SearchID()

	literal, ok := engine.Match("/foo/", corpus, nil).Get(id)
	require.True(t, ok)
	assert.Equal(t, []domain.MatchRange{{Start: 0, End: 3}}, literal.Ranges)

	approximate, ok := engine.Match("foo", corpus, index).Get(id)
	require.True(t, ok)
	assert.Equal(t, []domain.MatchRange{{Start: 2, End: 5}}, approximate.Ranges)
}
