package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
)

// mockReporter records captured messages.
type mockReporter struct {
	messages []string
}

func (r *mockReporter) CaptureMessage(msg string) {
	r.messages = append(r.messages, msg)
}

// substringIndex is a FuzzyIndex matching case-insensitive substrings
// of the untrimmed frame name.
type substringIndex struct {
	frames []domain.Frame
}

func (i *substringIndex) Search(query string) []driven.FuzzyHit {
	q := strings.ToLower(query)
	var hits []driven.FuzzyHit
	for _, f := range i.frames {
		at := strings.Index(strings.ToLower(f.Name), q)
		if at < 0 {
			continue
		}
		hits = append(hits, driven.FuzzyHit{
			Item:  f,
			Score: 1,
			Matches: []driven.FuzzyMatch{{
				Key:     "name",
				Indices: []domain.MatchRange{{Start: at, End: at + len(q)}},
			}},
		})
	}
	return hits
}

// mockIndexFactory builds substring indexes and counts builds.
type mockIndexFactory struct {
	builds int
}

func (f *mockIndexFactory) NewIndex(frames []domain.Frame) driven.FuzzyIndex {
	f.builds++
	return &substringIndex{frames: frames}
}

// focusCall records one FocusFrame invocation.
type focusCall struct {
	frame  domain.Frame
	intent domain.FocusIntent
}

// mockFocuser records focused frames.
type mockFocuser struct {
	calls []focusCall
}

func (f *mockFocuser) FocusFrame(frame domain.Frame, intent domain.FocusIntent) {
	f.calls = append(f.calls, focusCall{frame: frame, intent: intent})
}

// mockReader is a ProfileReader backed by in-memory profiles keyed by path.
type mockReader struct {
	profiles map[string]*domain.StackProfile
	data     map[string][]byte
	err      error
}

func newMockReader() *mockReader {
	return &mockReader{
		profiles: make(map[string]*domain.StackProfile),
		data:     make(map[string][]byte),
	}
}

func (r *mockReader) add(path string, data string, p *domain.StackProfile) {
	r.profiles[path] = p
	r.data[path] = []byte(data)
}

func (r *mockReader) Detect(data []byte) (domain.ProfileFormat, error) {
	return domain.ProfileFormatCollapsed, nil
}

func (r *mockReader) Decode(name string, data []byte) (*domain.StackProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	for path, d := range r.data {
		if string(d) == string(data) {
			return r.profiles[path], nil
		}
	}
	return nil, domain.ErrUnknownFormat
}

func (r *mockReader) ReadFile(ctx context.Context, path string) (*domain.StackProfile, []byte, error) {
	if r.err != nil {
		return nil, nil, r.err
	}
	p, ok := r.profiles[path]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	return p, r.data[path], nil
}

func (r *mockReader) ReadFiles(ctx context.Context, paths []string) ([]*domain.StackProfile, error) {
	out := make([]*domain.StackProfile, len(paths))
	for i, path := range paths {
		p, _, err := r.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// graphOf builds a flamegraph whose frames are laid out one per name at depth 0.
func graphOf(names ...string) *domain.Flamegraph {
	g := &domain.Flamegraph{}
	for i, n := range names {
		g.Frames = append(g.Frames, domain.Frame{
			Name:  n,
			Start: float64(i * 10),
			End:   float64(i*10 + 10),
		})
	}
	return g
}
