package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRange_Len(t *testing.T) {
	assert.Equal(t, 3, MatchRange{Start: 2, End: 5}.Len())
	assert.Equal(t, 0, MatchRange{Start: 4, End: 4}.Len())
}

// TestNewMatchResult_NeverEmpty tests that an empty mapping collapses to nil
func TestNewMatchResult_NeverEmpty(t *testing.T) {
	assert.Nil(t, NewMatchResult(nil))
	assert.Nil(t, NewMatchResult(map[string]FrameMatch{}))

	f := Frame{Name: "main", Start: 0, End: 10}
	r := NewMatchResult(map[string]FrameMatch{f.SearchID(): {Frame: f}})
	assert.NotNil(t, r)
	assert.Equal(t, 1, r.Len())
}

func TestMatchResult_NilSafe(t *testing.T) {
	var r *MatchResult

	assert.Equal(t, 0, r.Len())
	_, ok := r.Get("anything")
	assert.False(t, ok)
}

func TestMatchResult_Get(t *testing.T) {
	f := Frame{Name: "foo", Start: 1, End: 2, Depth: 3}
	r := NewMatchResult(map[string]FrameMatch{
		f.SearchID(): {Frame: f, Ranges: []MatchRange{{Start: 0, End: 3}}},
	})

	m, ok := r.Get(f.SearchID())
	assert.True(t, ok)
	assert.Equal(t, f, m.Frame)
	assert.Equal(t, []MatchRange{{Start: 0, End: 3}}, m.Ranges)
}

// TestParsedQuery_Modes tests each query variant reports its mode
func TestParsedQuery_Modes(t *testing.T) {
	tests := []struct {
		query ParsedQuery
		want  SearchMode
	}{
		{LiteralQuery{Pattern: "foo"}, SearchModeLiteral},
		{ApproximateQuery{Text: "foo"}, SearchModeApproximate},
		{MalformedQuery{Raw: "//", Err: ErrMalformedQuery}, SearchModeMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Mode())
		})
	}
}

func TestFocusIntent_IsValid(t *testing.T) {
	assert.True(t, FocusCenter.IsValid())
	assert.True(t, FocusSelect.IsValid())
	assert.False(t, FocusIntent("zoom").IsValid())
	assert.False(t, FocusIntent("").IsValid())
}

func TestEmptySessionState(t *testing.T) {
	s := EmptySessionState()

	assert.Empty(t, s.Query)
	assert.Nil(t, s.Results)
	assert.Equal(t, NoCursor, s.Cursor)
	assert.False(t, s.HasCursor())
}

func TestSessionState_HasCursor(t *testing.T) {
	assert.True(t, SessionState{Cursor: 0}.HasCursor())
	assert.False(t, SessionState{Cursor: NoCursor}.HasCursor())
}
