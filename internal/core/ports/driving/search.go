package driving

import (
	"context"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// FrameSearchService runs one-shot frame searches for external actors.
type FrameSearchService interface {
	// Find searches every frame of the profile set and returns the matches
	// in navigation order.
	Find(ctx context.Context, query string, set *domain.ProfileSet, opts domain.SearchOptions) (*domain.SearchReport, error)
}

// SearchSession is an interactive search over a changing set of flamegraphs.
// It is not safe for concurrent use; drive it from one event loop.
type SearchSession interface {
	// SetQuery runs a search for the query. An empty query clears the session.
	SetQuery(query string)

	// Clear resets the query, results and cursor.
	Clear()

	// Next moves the cursor to the next match, wrapping to the first.
	Next()

	// Previous moves the cursor to the previous match, wrapping to the last.
	Previous()

	// Select moves the cursor to a position in the ordered matches.
	// Out of range positions are ignored.
	Select(index int)

	// SetFlamegraphs replaces the searched profile set.
	// An active query is re-run against the new frames.
	SetFlamegraphs(set *domain.ProfileSet)

	// State returns the current session state.
	State() domain.SessionState

	// Ordered returns the matched frames in navigation order.
	Ordered() []domain.Frame

	// Current returns the frame under the cursor.
	Current() (domain.Frame, bool)
}
