package driven

import (
	"context"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// ProfileStore persists imported profiles and their raw bytes.
// Backed by SQLite for the profile library.
type ProfileStore interface {
	// SaveProfile stores or updates a profile and its raw bytes.
	SaveProfile(ctx context.Context, profile *domain.ProfileRecord, data []byte) error

	// GetProfile retrieves a profile by ID.
	GetProfile(ctx context.Context, id string) (*domain.ProfileRecord, error)

	// GetProfileData retrieves the raw bytes of a profile.
	GetProfileData(ctx context.Context, id string) ([]byte, error)

	// FindByFingerprint retrieves a profile by content hash.
	// Returns domain.ErrNotFound when no profile has that fingerprint.
	FindByFingerprint(ctx context.Context, fingerprint string) (*domain.ProfileRecord, error)

	// ListProfiles returns all profiles, newest first.
	ListProfiles(ctx context.Context) ([]domain.ProfileRecord, error)

	// DeleteProfile removes a profile.
	DeleteProfile(ctx context.Context, id string) error
}
