// Package fuzzy implements approximate frame name matching.
//
// An index answers a query in two passes. The first finds names that
// contain the query's characters in order, and accepts those whose
// matched characters form few enough separate runs. The second compares
// the query against windows of the remaining names by edit distance, to
// tolerate typos. Both passes ignore case and report byte ranges into
// the untrimmed name.
package fuzzy

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
)

// Ensure Factory and Index implement the interfaces.
var (
	_ driven.FuzzyIndexFactory = (*Factory)(nil)
	_ driven.FuzzyIndex        = (*Index)(nil)
)

// nameKey is the key reported for matches against the frame name.
const nameKey = "name"

// Factory builds indexes with a fixed threshold.
type Factory struct {
	threshold float64
}

// NewFactory creates an index factory.
// The threshold is in [0, 1]; values outside it use the default.
func NewFactory(threshold float64) *Factory {
	if threshold < 0 || threshold > 1 {
		threshold = domain.DefaultFuzzyThreshold
	}
	return &Factory{threshold: threshold}
}

// Threshold returns the threshold of built indexes.
func (f *Factory) Threshold() float64 {
	return f.threshold
}

// NewIndex builds an index over the given frames.
func (f *Factory) NewIndex(frames []domain.Frame) driven.FuzzyIndex {
	return NewIndex(frames, f.threshold)
}

// Index is an immutable approximate-match index over frame names.
// Names are indexed once however many frames share them.
type Index struct {
	threshold float64
	frames    []domain.Frame
	names     []string
	byName    [][]int
}

// NewIndex builds an index over frames.
func NewIndex(frames []domain.Frame, threshold float64) *Index {
	idx := &Index{
		threshold: threshold,
		frames:    frames,
	}
	seen := make(map[string]int)
	for i, f := range frames {
		n, ok := seen[f.Name]
		if !ok {
			n = len(idx.names)
			seen[f.Name] = n
			idx.names = append(idx.names, f.Name)
			idx.byName = append(idx.byName, nil)
		}
		idx.byName[n] = append(idx.byName[n], i)
	}
	return idx
}

// nameSource adapts the unique names to fuzzy.Source.
type nameSource []string

func (s nameSource) String(i int) string { return s[i] }
func (s nameSource) Len() int            { return len(s) }

// nameHit is a match against one unique name.
type nameHit struct {
	name   int
	score  float64
	ranges []domain.MatchRange
}

// Search returns frames whose names approximately match query, best first.
func (idx *Index) Search(query string) []driven.FuzzyHit {
	if query == "" || len(idx.names) == 0 {
		return nil
	}

	allowed := int(idx.threshold * float64(utf8.RuneCountInString(query)))
	matched := make(map[int]bool)

	var hits []nameHit
	for _, m := range fuzzy.FindFrom(query, nameSource(idx.names)) {
		ranges := substringRange(m.Str, query)
		if ranges == nil {
			ranges = collapse(m.Str, m.MatchedIndexes)
		}
		if len(ranges)-1 > allowed {
			continue
		}
		matched[m.Index] = true
		hits = append(hits, nameHit{name: m.Index, score: float64(m.Score), ranges: ranges})
	}

	if allowed > 0 {
		hits = append(hits, idx.searchEdits(query, allowed, matched)...)
	}

	var out []driven.FuzzyHit
	for _, h := range hits {
		for _, fi := range idx.byName[h.name] {
			out = append(out, driven.FuzzyHit{
				Item:    idx.frames[fi],
				Score:   h.score,
				Matches: []driven.FuzzyMatch{{Key: nameKey, Indices: h.ranges}},
			})
		}
	}
	return out
}

// searchEdits finds names holding a window within maxEdits of query.
// Hits are ordered by ascending distance.
func (idx *Index) searchEdits(query string, maxEdits int, skip map[int]bool) []nameHit {
	q := []rune(strings.ToLower(query))

	type editHit struct {
		nameHit
		distance int
	}
	var found []editHit
	for i, name := range idx.names {
		if skip[i] {
			continue
		}
		r, d, ok := bestWindow(name, q, maxEdits)
		if !ok {
			continue
		}
		found = append(found, editHit{
			nameHit:  nameHit{name: i, score: -float64(d), ranges: []domain.MatchRange{r}},
			distance: d,
		})
	}

	slices.SortStableFunc(found, func(a, b editHit) int {
		return cmp.Compare(a.distance, b.distance)
	})

	out := make([]nameHit, len(found))
	for i, f := range found {
		out[i] = f.nameHit
	}
	return out
}

// bestWindow slides windows of len(q)-k .. len(q)+k runes over name and
// returns the one with the smallest edit distance to q. Ties go to the
// earliest window, then to the length closest to q.
func bestWindow(name string, q []rune, k int) (domain.MatchRange, int, bool) {
	lower := []rune(strings.ToLower(name))
	offsets := runeOffsets(name)
	if len(offsets)-1 != len(lower) {
		return domain.MatchRange{}, 0, false
	}

	best, bestStart, bestLen := k+1, 0, 0
	for length := max(1, len(q)-k); length <= len(q)+k && length <= len(lower); length++ {
		for start := 0; start+length <= len(lower); start++ {
			d := edlib.LevenshteinDistance(string(q), string(lower[start:start+length]))
			if better(d, start, length, best, bestStart, bestLen, len(q)) {
				best, bestStart, bestLen = d, start, length
			}
		}
	}
	if best > k {
		return domain.MatchRange{}, 0, false
	}
	return domain.MatchRange{Start: offsets[bestStart], End: offsets[bestStart+bestLen]}, best, true
}

func better(d, start, length, best, bestStart, bestLen, q int) bool {
	if d != best {
		return d < best
	}
	if start != bestStart {
		return start < bestStart
	}
	return absDiff(length, q) < absDiff(bestLen, q)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// runeOffsets returns the byte offset of each rune of s, plus len(s).
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// substringRange returns the range of query in name ignoring case, or
// nil when name does not contain it. Names whose lowercase form changes
// byte length are left to the subsequence ranges.
func substringRange(name, query string) []domain.MatchRange {
	lowerName, lowerQuery := strings.ToLower(name), strings.ToLower(query)
	if len(lowerName) != len(name) {
		return nil
	}
	at := strings.Index(lowerName, lowerQuery)
	if at < 0 {
		return nil
	}
	return []domain.MatchRange{{Start: at, End: at + len(lowerQuery)}}
}

// collapse merges matched byte indexes into contiguous ranges.
func collapse(s string, indexes []int) []domain.MatchRange {
	var ranges []domain.MatchRange
	for _, i := range indexes {
		if i < 0 || i >= len(s) {
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		if n := len(ranges); n > 0 && ranges[n-1].End == i {
			ranges[n-1].End = i + size
			continue
		}
		ranges = append(ranges, domain.MatchRange{Start: i, End: i + size})
	}
	return ranges
}
