package services

import (
	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driving"
	"github.com/custodia-labs/flamesearch/internal/logger"
)

// Ensure SearchSession implements the interface.
var _ driving.SearchSession = (*SearchSession)(nil)

// SearchSession owns the query, match results and cursor of an
// interactive search. It is driven from a single event loop.
type SearchSession struct {
	engine       *MatchEngine
	indexFactory driven.FuzzyIndexFactory
	focuser      driven.FrameFocuser
	intent       domain.FocusIntent

	corpora  *CorpusBuilder
	indexes  refMemo[*domain.Corpus, driven.FuzzyIndex]
	ordering *Ordering

	set    *domain.ProfileSet
	corpus *domain.Corpus
	state  domain.SessionState

	didInitialSearch bool
}

// NewSearchSession creates a new search session.
//
// A non-empty initialQuery is held as the session query and searched
// once the session first receives a non-empty set of frames, unless the
// query was replaced or cleared before then. The indexFactory may be nil,
// in which case approximate queries match nothing.
func NewSearchSession(
	engine *MatchEngine,
	indexFactory driven.FuzzyIndexFactory,
	initialQuery string,
) *SearchSession {
	return &SearchSession{
		engine:           engine,
		indexFactory:     indexFactory,
		intent:           domain.FocusCenter,
		corpora:          NewCorpusBuilder(),
		ordering:         NewOrdering(),
		state:            domain.SessionState{Query: initialQuery, Cursor: domain.NoCursor},
		didInitialSearch: initialQuery == "",
	}
}

// SetFocuser sets the renderer notified when the cursor moves.
func (s *SearchSession) SetFocuser(focuser driven.FrameFocuser) {
	s.focuser = focuser
}

// SetFocusIntent sets how focused frames are brought into view.
// Unknown intents are ignored.
func (s *SearchSession) SetFocusIntent(intent domain.FocusIntent) {
	if intent.IsValid() {
		s.intent = intent
	}
}

// SetFlamegraphs replaces the searched profile set.
func (s *SearchSession) SetFlamegraphs(set *domain.ProfileSet) {
	s.set = set
	corpus := s.corpora.Build(set)
	changed := corpus != s.corpus
	s.corpus = corpus

	if !s.didInitialSearch && corpus.Len() > 0 {
		s.didInitialSearch = true
		logger.Debug("Running initial search for %q", s.state.Query)
		s.SetQuery(s.state.Query)
		return
	}

	if changed && s.state.Query != "" {
		logger.Debug("Frames changed, re-running search for %q", s.state.Query)
		s.SetQuery(s.state.Query)
	}
}

// SetQuery runs a search. An empty query clears the session.
func (s *SearchSession) SetQuery(query string) {
	if query == "" {
		s.Clear()
		return
	}

	corpus := s.currentCorpus()
	var index driven.FuzzyIndex
	if ParseQuery(query).Mode() == domain.SearchModeApproximate {
		index = s.index(corpus)
	}
	results := s.engine.Match(query, corpus, index)
	s.state = domain.SessionState{Query: query, Results: results, Cursor: domain.NoCursor}
}

// Clear resets the query, results and cursor.
func (s *SearchSession) Clear() {
	s.state = domain.EmptySessionState()
	s.didInitialSearch = true
}

// Next moves the cursor forward, wrapping from the last match to the first.
func (s *SearchSession) Next() {
	ordered := s.checkCursor()
	n := len(ordered)
	if n == 0 {
		return
	}

	cursor := s.state.Cursor
	if cursor == domain.NoCursor || cursor == n-1 {
		s.setCursor(ordered, 0)
		return
	}
	s.setCursor(ordered, cursor+1)
}

// Previous moves the cursor back, wrapping from the first match to the last.
func (s *SearchSession) Previous() {
	ordered := s.checkCursor()
	n := len(ordered)
	if n == 0 {
		return
	}

	cursor := s.state.Cursor
	if cursor == domain.NoCursor || cursor == 0 {
		s.setCursor(ordered, n-1)
		return
	}
	s.setCursor(ordered, cursor-1)
}

// Select moves the cursor to position index of the ordered matches.
func (s *SearchSession) Select(index int) {
	ordered := s.checkCursor()
	if index < 0 || index >= len(ordered) {
		return
	}
	s.setCursor(ordered, index)
}

// State returns the current session state.
func (s *SearchSession) State() domain.SessionState {
	s.checkCursor()
	return s.state
}

// Ordered returns the matched frames in navigation order.
func (s *SearchSession) Ordered() []domain.Frame {
	return s.ordering.Order(s.state.Results)
}

// Current returns the frame under the cursor.
func (s *SearchSession) Current() (domain.Frame, bool) {
	ordered := s.checkCursor()
	if s.state.Cursor == domain.NoCursor {
		return domain.Frame{}, false
	}
	return ordered[s.state.Cursor], true
}

// Match returns the match details for a frame, if it matched.
func (s *SearchSession) Match(frame domain.Frame) (domain.FrameMatch, bool) {
	return s.state.Results.Get(frame.SearchID())
}

// checkCursor resets a cursor that fell outside the ordering and
// returns the ordering.
func (s *SearchSession) checkCursor() []domain.Frame {
	ordered := s.Ordered()
	cursor := s.state.Cursor
	if cursor != domain.NoCursor && (cursor < 0 || cursor >= len(ordered)) {
		logger.Debug("Cursor %d out of range (%d matches), resetting", cursor, len(ordered))
		s.state.Cursor = domain.NoCursor
	}
	return ordered
}

func (s *SearchSession) setCursor(ordered []domain.Frame, cursor int) {
	previous := s.state.Cursor
	s.state.Cursor = cursor
	if cursor == previous {
		return
	}
	if s.focuser != nil {
		s.focuser.FocusFrame(ordered[cursor], s.intent)
	}
}

func (s *SearchSession) currentCorpus() *domain.Corpus {
	if s.corpus == nil {
		s.corpus = s.corpora.Build(s.set)
	}
	return s.corpus
}

func (s *SearchSession) index(corpus *domain.Corpus) driven.FuzzyIndex {
	if s.indexFactory == nil {
		return nil
	}
	return s.indexes.get(corpus, func(c *domain.Corpus) driven.FuzzyIndex {
		return s.indexFactory.NewIndex(c.Frames)
	})
}
