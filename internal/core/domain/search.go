package domain

// MatchRange is a half-open byte range [Start, End) into a frame name.
type MatchRange struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r MatchRange) Len() int {
	return r.End - r.Start
}

// FrameMatch pairs a frame with the ranges of its name that matched.
type FrameMatch struct {
	Frame  Frame
	Ranges []MatchRange
}

// MatchResult maps frame search identities to their matches.
//
// A nil *MatchResult means "no results": either nothing was searched or
// the search found nothing. A non-nil result always holds at least one match.
type MatchResult struct {
	Matches map[string]FrameMatch
}

// NewMatchResult wraps the given matches, returning nil when there are none.
func NewMatchResult(matches map[string]FrameMatch) *MatchResult {
	if len(matches) == 0 {
		return nil
	}
	return &MatchResult{Matches: matches}
}

// Len returns the number of matched frames.
func (r *MatchResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Matches)
}

// Get returns the match for a search identity.
func (r *MatchResult) Get(searchID string) (FrameMatch, bool) {
	if r == nil {
		return FrameMatch{}, false
	}
	m, ok := r.Matches[searchID]
	return m, ok
}

// SearchMode is the strategy chosen for a query.
type SearchMode string

// Available search modes.
const (
	// SearchModeNone means no search ran.
	SearchModeNone SearchMode = "none"

	// SearchModeLiteral uses a delimited regular expression.
	SearchModeLiteral SearchMode = "literal"

	// SearchModeApproximate uses the fuzzy index.
	SearchModeApproximate SearchMode = "approximate"

	// SearchModeMalformed means the query looked delimited but could not be parsed.
	SearchModeMalformed SearchMode = "malformed"
)

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// ParsedQuery is the classified form of a query string.
// It is one of LiteralQuery, ApproximateQuery or MalformedQuery.
type ParsedQuery interface {
	// Mode returns the search mode for the query.
	Mode() SearchMode
}

// LiteralQuery is a regular expression written as /pattern/flags.
type LiteralQuery struct {
	Pattern string
	Flags   string
}

// Mode implements ParsedQuery.
func (LiteralQuery) Mode() SearchMode { return SearchModeLiteral }

// ApproximateQuery is free text matched by the fuzzy index.
type ApproximateQuery struct {
	Text string
}

// Mode implements ParsedQuery.
func (ApproximateQuery) Mode() SearchMode { return SearchModeApproximate }

// MalformedQuery is a delimited query that failed to parse.
type MalformedQuery struct {
	Raw string
	Err error
}

// Mode implements ParsedQuery.
func (MalformedQuery) Mode() SearchMode { return SearchModeMalformed }

// SearchOptions configures a one-shot frame search.
type SearchOptions struct {
	// Limit is the maximum number of matches returned. 0 means no limit.
	Limit int
}

// SearchReport is the outcome of a one-shot frame search.
type SearchReport struct {
	// Query is the query as submitted.
	Query string

	// Mode is the strategy the query was classified into.
	Mode SearchMode

	// Matches holds the matched frames in navigation order.
	Matches []FrameMatch

	// Total is the number of matches before any limit was applied.
	Total int
}

// FocusIntent tells the renderer how to bring a frame into view.
type FocusIntent string

// Available focus intents.
const (
	// FocusCenter zooms so the frame sits in the middle of the view.
	FocusCenter FocusIntent = "center"

	// FocusSelect highlights the frame without moving the view.
	FocusSelect FocusIntent = "select"
)

// IsValid returns true if the intent is recognised.
func (i FocusIntent) IsValid() bool {
	return i == FocusCenter || i == FocusSelect
}

// String returns the string representation.
func (i FocusIntent) String() string {
	return string(i)
}

// NoCursor is the cursor value when nothing is selected.
const NoCursor = -1

// SessionState is the state of an interactive search session.
//
// Cursor is NoCursor whenever Results is nil. Otherwise it is NoCursor or
// an index into the ordered results.
type SessionState struct {
	Query   string
	Results *MatchResult
	Cursor  int
}

// EmptySessionState returns the cleared state.
func EmptySessionState() SessionState {
	return SessionState{Cursor: NoCursor}
}

// HasCursor reports whether a result is selected.
func (s SessionState) HasCursor() bool {
	return s.Cursor != NoCursor
}
