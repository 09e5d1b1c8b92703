// Package collapsed reads and writes folded stack profiles.
//
// Each line holds one stack, frames separated by semicolons and root
// first, followed by a space and the sample count:
//
//	main;runtime.mallocgc;runtime.memclr 42
//
// Counts accept base prefixes such as 0x. Blank lines are skipped.
package collapsed

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
)

// Ensure Decoder implements the interface.
var _ driven.ProfileDecoder = (*Decoder)(nil)

// ErrMalformed indicates a line that is not "stack count".
var ErrMalformed = errors.New("collapsed: malformed input")

// maxLineSize bounds a single stack line. Deep C++ stacks get long.
const maxLineSize = 16 * 1024 * 1024

// Decoder decodes folded stacks.
type Decoder struct{}

// New creates a new collapsed stack decoder.
func New() *Decoder {
	return &Decoder{}
}

// Format returns the format this decoder reads.
func (d *Decoder) Format() domain.ProfileFormat {
	return domain.ProfileFormatCollapsed
}

// Decode parses folded stacks.
func (d *Decoder) Decode(data []byte) (*domain.StackProfile, error) {
	samples, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &domain.StackProfile{
		Format:  domain.ProfileFormatCollapsed,
		Samples: samples,
	}, nil
}

// Read parses folded stacks from r.
func Read(r io.Reader) ([]domain.Sample, error) {
	samples := make([]domain.Sample, 0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		sample, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		samples = append(samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("collapsed: read: %w", err)
	}

	return samples, nil
}

// ParseLine parses one "stack count" line.
// The count follows the last space, so frame names may contain spaces.
func ParseLine(line string) (domain.Sample, error) {
	idx := strings.LastIndexByte(line, ' ')
	if idx == -1 {
		return domain.Sample{}, ErrMalformed
	}
	count, err := strconv.ParseInt(line[idx+1:], 0, 64)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return domain.Sample{
		Stack: strings.Split(line[:idx], ";"),
		Value: count,
	}, nil
}

// Write encodes samples as folded stacks.
func Write(w io.Writer, samples []domain.Sample) error {
	for _, s := range samples {
		if _, err := fmt.Fprintf(w, "%s %d\n", strings.Join(s.Stack, ";"), s.Value); err != nil {
			return err
		}
	}
	return nil
}

// Marshal encodes samples as folded stacks.
func Marshal(samples []domain.Sample) ([]byte, error) {
	var buf bytes.Buffer
	err := Write(&buf, samples)
	return buf.Bytes(), err
}

// Sniff reports whether data looks like folded stacks: text whose
// first non-blank line parses.
func Sniff(data []byte) bool {
	for len(data) > 0 {
		var line []byte
		line, data, _ = bytes.Cut(data, []byte{'\n'})
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(line) == 0 {
			continue
		}
		_, err := ParseLine(string(line))
		return err == nil
	}
	return false
}
