package driven

import "github.com/custodia-labs/flamesearch/internal/core/domain"

// FuzzyIndex answers approximate queries over a fixed set of frames.
// An index is immutable: when the frames change a new index is built.
type FuzzyIndex interface {
	// Search returns the frames whose names approximately match the query,
	// best first. Ranges are byte offsets into the untrimmed frame name.
	Search(query string) []FuzzyHit
}

// FuzzyIndexFactory builds fuzzy indexes.
type FuzzyIndexFactory interface {
	// NewIndex builds an index over the given frames.
	NewIndex(frames []domain.Frame) FuzzyIndex
}

// FuzzyHit represents one approximate match from the index.
type FuzzyHit struct {
	// Item is the matched frame.
	Item domain.Frame

	// Score is the relevance score. Higher is better.
	Score float64

	// Matches holds the matched ranges per searched key.
	Matches []FuzzyMatch
}

// FuzzyMatch holds the ranges of one key that matched.
type FuzzyMatch struct {
	// Key names the searched attribute, e.g. "name".
	Key string

	// Indices holds the matched ranges in the order found.
	Indices []domain.MatchRange
}
