// Package profile reads profile files from disk.
//
// The reader detects the format of each file, decodes it with the
// matching decoder and fingerprints the raw bytes so identical profiles
// can be recognised on import.
package profile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/decoders/collapsed"
	"github.com/custodia-labs/flamesearch/internal/decoders/pprof"
	"github.com/custodia-labs/flamesearch/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.ProfileReader = (*Reader)(nil)

// gzipMagic prefixes gzip streams; pprof files are usually compressed.
var gzipMagic = []byte{0x1f, 0x8b}

// DefaultConcurrency bounds parallel file reads.
const DefaultConcurrency = 8

// Reader detects and decodes profile files.
type Reader struct {
	decoders    map[domain.ProfileFormat]driven.ProfileDecoder
	concurrency int
}

// NewReader creates a reader with the collapsed and pprof decoders.
func NewReader() *Reader {
	return NewReaderWith(collapsed.New(), pprof.New())
}

// NewReaderWith creates a reader with the given decoders.
func NewReaderWith(decoders ...driven.ProfileDecoder) *Reader {
	r := &Reader{
		decoders:    make(map[domain.ProfileFormat]driven.ProfileDecoder, len(decoders)),
		concurrency: DefaultConcurrency,
	}
	for _, d := range decoders {
		r.decoders[d.Format()] = d
	}
	return r
}

// SetConcurrency sets how many files ReadFiles reads at once.
func (r *Reader) SetConcurrency(n int) {
	if n > 0 {
		r.concurrency = n
	}
}

// Detect returns the format of raw profile bytes.
// Gzip streams are pprof; text that parses as folded stacks is collapsed;
// anything else is tried as uncompressed pprof.
func (r *Reader) Detect(data []byte) (domain.ProfileFormat, error) {
	if len(data) == 0 {
		return "", domain.ErrEmptyProfile
	}
	if bytes.HasPrefix(data, gzipMagic) {
		return domain.ProfileFormatPProf, nil
	}
	if collapsed.Sniff(data) {
		return domain.ProfileFormatCollapsed, nil
	}
	if d, ok := r.decoders[domain.ProfileFormatPProf]; ok {
		if _, err := d.Decode(data); err == nil {
			return domain.ProfileFormatPProf, nil
		}
	}
	return "", domain.ErrUnknownFormat
}

// Decode detects the format of raw bytes and decodes them.
func (r *Reader) Decode(name string, data []byte) (*domain.StackProfile, error) {
	format, err := r.Detect(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	d, ok := r.decoders[format]
	if !ok {
		return nil, fmt.Errorf("%s: %w: no decoder for %s", name, domain.ErrUnknownFormat, format)
	}

	profile, err := d.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	profile.Name = name
	profile.Format = format
	profile.Fingerprint = Fingerprint(data)
	return profile, nil
}

// ReadFile reads and decodes one file.
func (r *Reader) ReadFile(ctx context.Context, path string) (*domain.StackProfile, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("read %s: %w", path, domain.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	profile, err := r.Decode(filepath.Base(path), data)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Read %s: %s, %d samples", path, profile.Format, len(profile.Samples))
	return profile, data, nil
}

// ReadFiles reads several files concurrently, preserving path order.
// The first failure cancels the remaining reads.
func (r *Reader) ReadFiles(ctx context.Context, paths []string) ([]*domain.StackProfile, error) {
	defer logger.Timed(fmt.Sprintf("read %d profiles", len(paths)))()
	profiles := make([]*domain.StackProfile, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			p, _, err := r.ReadFile(gctx, path)
			if err != nil {
				return err
			}
			profiles[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Fingerprint returns a content hash of raw profile bytes.
func Fingerprint(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
