package services

import "github.com/custodia-labs/flamesearch/internal/core/domain"

// CorpusBuilder flattens profile sets into searchable corpora.
// The last corpus is reused while the same *ProfileSet is passed in.
type CorpusBuilder struct {
	memo refMemo[*domain.ProfileSet, *domain.Corpus]
}

// NewCorpusBuilder creates a new corpus builder.
func NewCorpusBuilder() *CorpusBuilder {
	return &CorpusBuilder{}
}

// Build returns the corpus for a profile set.
func (b *CorpusBuilder) Build(set *domain.ProfileSet) *domain.Corpus {
	return b.memo.get(set, func(set *domain.ProfileSet) *domain.Corpus {
		if set == nil {
			return BuildCorpus()
		}
		return BuildCorpus(set.Graphs...)
	})
}

// BuildCorpus concatenates the frames of the graphs in order.
// Each frame is stamped with the index of its graph.
func BuildCorpus(graphs ...*domain.Flamegraph) *domain.Corpus {
	size := 0
	for _, g := range graphs {
		if g != nil {
			size += len(g.Frames)
		}
	}

	frames := make([]domain.Frame, 0, size)
	for i, g := range graphs {
		if g == nil {
			continue
		}
		for _, f := range g.Frames {
			f.Graph = i
			frames = append(frames, f)
		}
	}
	return &domain.Corpus{Frames: frames}
}
