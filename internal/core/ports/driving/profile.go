package driving

import (
	"context"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// ProfileService manages the profile library and loads flamegraphs.
type ProfileService interface {
	// Import reads a profile file into the library.
	// Importing identical bytes twice returns the existing record.
	Import(ctx context.Context, path string) (*domain.ProfileRecord, error)

	// List returns all imported profiles.
	List(ctx context.Context) ([]domain.ProfileRecord, error)

	// Get retrieves an imported profile by ID.
	Get(ctx context.Context, id string) (*domain.ProfileRecord, error)

	// Remove deletes an imported profile.
	Remove(ctx context.Context, id string) error

	// Load builds the flamegraph of an imported profile.
	Load(ctx context.Context, id string) (*domain.Flamegraph, error)

	// LoadFiles builds flamegraphs from profile files without importing them.
	LoadFiles(ctx context.Context, paths []string) ([]*domain.Flamegraph, error)
}
