package driven

import (
	"context"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// ProfileDecoder turns the bytes of one profile format into stacks.
type ProfileDecoder interface {
	// Format returns the format this decoder reads.
	Format() domain.ProfileFormat

	// Decode parses raw profile bytes.
	Decode(data []byte) (*domain.StackProfile, error)
}

// ProfileReader detects formats and reads profiles from disk.
type ProfileReader interface {
	// Detect returns the format of raw profile bytes.
	Detect(data []byte) (domain.ProfileFormat, error)

	// Decode detects the format of raw bytes and decodes them.
	// The name labels the returned profile.
	Decode(name string, data []byte) (*domain.StackProfile, error)

	// ReadFile reads and decodes one file, returning the raw bytes as well.
	ReadFile(ctx context.Context, path string) (*domain.StackProfile, []byte, error)

	// ReadFiles reads several files concurrently.
	// Profiles are returned in the order of paths.
	ReadFiles(ctx context.Context, paths []string) ([]*domain.StackProfile, error)
}
