package services

import (
	"context"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driving"
	"github.com/custodia-labs/flamesearch/internal/logger"
)

// Ensure FrameSearchService implements the interface.
var _ driving.FrameSearchService = (*FrameSearchService)(nil)

// FrameSearchService runs one-shot searches over profile sets.
// It is safe for concurrent use.
type FrameSearchService struct {
	engine       *MatchEngine
	indexFactory driven.FuzzyIndexFactory
	corpora      *CorpusBuilder
	indexes      refMemo[*domain.Corpus, driven.FuzzyIndex]
	ordering     *Ordering
}

// NewFrameSearchService creates a new frame search service.
func NewFrameSearchService(engine *MatchEngine, indexFactory driven.FuzzyIndexFactory) *FrameSearchService {
	return &FrameSearchService{
		engine:       engine,
		indexFactory: indexFactory,
		corpora:      NewCorpusBuilder(),
		ordering:     NewOrdering(),
	}
}

// Find searches every frame of the profile set.
func (s *FrameSearchService) Find(
	ctx context.Context, query string, set *domain.ProfileSet, opts domain.SearchOptions,
) (*domain.SearchReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Frame Search")
	defer logger.Timed("frame search")()
	logger.Debug("Query: %q across %d flamegraphs", query, set.Len())

	report := &domain.SearchReport{Query: query, Mode: domain.SearchModeNone}
	if query == "" {
		return report, nil
	}

	parsed := ParseQuery(query)
	report.Mode = parsed.Mode()

	corpus := s.corpora.Build(set)
	var index driven.FuzzyIndex
	if report.Mode == domain.SearchModeApproximate && s.indexFactory != nil {
		index = s.indexes.get(corpus, func(c *domain.Corpus) driven.FuzzyIndex {
			return s.indexFactory.NewIndex(c.Frames)
		})
	}

	results := s.engine.Match(query, corpus, index)
	ordered := s.ordering.Order(results)
	report.Total = len(ordered)

	if opts.Limit > 0 && len(ordered) > opts.Limit {
		ordered = ordered[:opts.Limit]
	}
	report.Matches = make([]domain.FrameMatch, 0, len(ordered))
	for _, frame := range ordered {
		if m, ok := results.Get(frame.SearchID()); ok {
			report.Matches = append(report.Matches, m)
		}
	}

	logger.Debug("Mode %s, %d matches", report.Mode, report.Total)
	return report, nil
}
