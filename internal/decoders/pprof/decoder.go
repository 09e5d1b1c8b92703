// Package pprof reads pprof protobuf profiles into stacks.
package pprof

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/google/pprof/profile"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
)

// Ensure Decoder implements the interface.
var _ driven.ProfileDecoder = (*Decoder)(nil)

// inlinedSuffix marks frames that were inlined into their caller.
const inlinedSuffix = " (inlined)"

// Decoder decodes pprof profiles.
type Decoder struct {
	sampleType string
}

// New creates a new pprof decoder that reads the default sample type.
func New() *Decoder {
	return &Decoder{}
}

// NewWithSampleType creates a decoder that reads the named sample type,
// e.g. "alloc_space" for heap profiles.
func NewWithSampleType(sampleType string) *Decoder {
	return &Decoder{sampleType: sampleType}
}

// Format returns the format this decoder reads.
func (d *Decoder) Format() domain.ProfileFormat {
	return domain.ProfileFormatPProf
}

// Decode parses a gzip-compressed or raw pprof profile.
func (d *Decoder) Decode(data []byte) (*domain.StackProfile, error) {
	prof, err := profile.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pprof: %w", err)
	}
	return d.Convert(prof)
}

// Convert turns a parsed profile into root-first stacks.
func (d *Decoder) Convert(prof *profile.Profile) (*domain.StackProfile, error) {
	valueIdx, err := d.valueIndex(prof)
	if err != nil {
		return nil, err
	}

	res := &domain.StackProfile{
		Format:  domain.ProfileFormatPProf,
		Samples: make([]domain.Sample, len(prof.Sample)),
	}
	for i, s := range prof.Sample {
		sample := &res.Samples[i]
		sample.Value = s.Value[valueIdx]
		sample.Stack = make([]string, 0, len(s.Location))
		for _, loc := range s.Location {
			sample.Stack = appendLocation(sample.Stack, loc)
		}
		// pprof stores stacks leaf first.
		slices.Reverse(sample.Stack)
	}
	return res, nil
}

// valueIndex picks the sample value to read. Without an explicit
// choice it uses the profile's default type, falling back to the last
// type as go tool pprof does.
func (d *Decoder) valueIndex(prof *profile.Profile) (int, error) {
	if len(prof.SampleType) == 0 {
		return 0, fmt.Errorf("pprof: %w", domain.ErrEmptyProfile)
	}

	want := d.sampleType
	if want == "" {
		want = prof.DefaultSampleType
	}
	if want == "" {
		return len(prof.SampleType) - 1, nil
	}
	for i, st := range prof.SampleType {
		if st.Type == want {
			return i, nil
		}
	}
	if d.sampleType != "" {
		return 0, fmt.Errorf("pprof: sample type %q not in profile: %w", d.sampleType, domain.ErrInvalidInput)
	}
	return len(prof.SampleType) - 1, nil
}

// appendLocation appends the frames of one location leaf first. The
// last line is the caller; the lines before it were inlined into it.
func appendLocation(stack []string, loc *profile.Location) []string {
	if len(loc.Line) == 0 {
		return append(stack, addressName(loc))
	}
	last := len(loc.Line) - 1
	for j, line := range loc.Line {
		name := functionName(line.Function)
		if name == "" {
			name = addressName(loc)
		}
		if j != last {
			name += inlinedSuffix
		}
		stack = append(stack, name)
	}
	return stack
}

func functionName(fn *profile.Function) string {
	if fn == nil {
		return ""
	}
	if fn.Name != "" {
		return fn.Name
	}
	return fn.SystemName
}

func addressName(loc *profile.Location) string {
	if loc.Mapping == nil || loc.Mapping.File == "" {
		return fmt.Sprintf("0x%x", loc.Address)
	}
	return fmt.Sprintf("0x%x @%s", loc.Address, loc.Mapping.File)
}
