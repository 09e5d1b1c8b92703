package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/logger"
)

// MatchEngine finds the frames of a corpus that match a query.
type MatchEngine struct {
	reporter driven.Reporter
}

// NewMatchEngine creates a new match engine.
// Malformed queries and compile failures are sent to reporter, which may be nil.
func NewMatchEngine(reporter driven.Reporter) *MatchEngine {
	return &MatchEngine{reporter: reporter}
}

// Match returns the frames matching query, or nil when nothing matches.
//
// Literal queries scan the trimmed frame names, so their ranges are
// relative to the trimmed name. Approximate queries are answered by
// index, whose ranges are relative to the untrimmed name.
func (e *MatchEngine) Match(query string, corpus *domain.Corpus, index driven.FuzzyIndex) *domain.MatchResult {
	if query == "" || corpus.Len() == 0 {
		return nil
	}

	switch q := ParseQuery(query).(type) {
	case domain.LiteralQuery:
		return e.matchLiteral(q, corpus)
	case domain.ApproximateQuery:
		return e.matchApproximate(q, index)
	case domain.MalformedQuery:
		e.report(fmt.Sprintf("invalid search pattern %q: %v", q.Raw, q.Err))
	}
	return nil
}

func (e *MatchEngine) matchLiteral(q domain.LiteralQuery, corpus *domain.Corpus) *domain.MatchResult {
	re, err := CompileLiteral(q)
	if err != nil {
		e.report(fmt.Sprintf("invalid search pattern: %v", err))
		return nil
	}

	matches := make(map[string]domain.FrameMatch)
	for _, frame := range corpus.Frames {
		locs := re.FindAllStringIndex(strings.TrimSpace(frame.Name), -1)
		if len(locs) == 0 {
			continue
		}
		ranges := make([]domain.MatchRange, len(locs))
		for i, loc := range locs {
			ranges[i] = domain.MatchRange{Start: loc[0], End: loc[1]}
		}
		matches[frame.SearchID()] = domain.FrameMatch{Frame: frame, Ranges: ranges}
	}

	logger.Debug("Literal /%s/%s matched %d frames", q.Pattern, q.Flags, len(matches))
	return domain.NewMatchResult(matches)
}

func (e *MatchEngine) matchApproximate(q domain.ApproximateQuery, index driven.FuzzyIndex) *domain.MatchResult {
	if index == nil {
		logger.Debug("No fuzzy index, skipping approximate match")
		return nil
	}

	hits := index.Search(q.Text)
	matches := make(map[string]domain.FrameMatch, len(hits))
	for _, hit := range hits {
		var ranges []domain.MatchRange
		for _, m := range hit.Matches {
			ranges = append(ranges, m.Indices...)
		}
		matches[hit.Item.SearchID()] = domain.FrameMatch{Frame: hit.Item, Ranges: ranges}
	}

	logger.Debug("Approximate %q matched %d frames", q.Text, len(matches))
	return domain.NewMatchResult(matches)
}

func (e *MatchEngine) report(msg string) {
	logger.Debug("%s", msg)
	if e.reporter != nil {
		e.reporter.CaptureMessage(msg)
	}
}
