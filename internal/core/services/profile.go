package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driving"
	"github.com/custodia-labs/flamesearch/internal/logger"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// ProfileService manages the profile library.
type ProfileService struct {
	store  driven.ProfileStore
	reader driven.ProfileReader
}

// NewProfileService creates a new profile service.
func NewProfileService(store driven.ProfileStore, reader driven.ProfileReader) *ProfileService {
	return &ProfileService{
		store:  store,
		reader: reader,
	}
}

// Import reads a profile file into the library.
func (s *ProfileService) Import(ctx context.Context, path string) (*domain.ProfileRecord, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	profile, data, err := s.reader.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(profile.Samples) == 0 {
		return nil, fmt.Errorf("import %s: %w", path, domain.ErrEmptyProfile)
	}

	existing, err := s.store.FindByFingerprint(ctx, profile.Fingerprint)
	switch {
	case err == nil:
		logger.Debug("Profile %s already imported as %s", path, existing.ID)
		return existing, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("lookup fingerprint: %w", err)
	}

	record := &domain.ProfileRecord{
		Name:        profile.Name,
		Path:        path,
		Format:      profile.Format,
		Fingerprint: profile.Fingerprint,
		Samples:     len(profile.Samples),
		CreatedAt:   time.Now(),
	}
	if err := s.store.SaveProfile(ctx, record, data); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	logger.Info("Imported %s (%s, %d samples) as %s", path, record.Format, record.Samples, record.ID)
	return record, nil
}

// List returns all imported profiles.
func (s *ProfileService) List(ctx context.Context) ([]domain.ProfileRecord, error) {
	return s.store.ListProfiles(ctx)
}

// Get retrieves an imported profile by ID.
func (s *ProfileService) Get(ctx context.Context, id string) (*domain.ProfileRecord, error) {
	return s.store.GetProfile(ctx, id)
}

// Remove deletes an imported profile.
func (s *ProfileService) Remove(ctx context.Context, id string) error {
	if _, err := s.store.GetProfile(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteProfile(ctx, id)
}

// Load builds the flamegraph of an imported profile.
func (s *ProfileService) Load(ctx context.Context, id string) (*domain.Flamegraph, error) {
	record, err := s.store.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.store.GetProfileData(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load profile data: %w", err)
	}

	profile, err := s.reader.Decode(record.Name, data)
	if err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", id, err)
	}
	return BuildFlamegraph(record.ID, profile), nil
}

// LoadFiles builds flamegraphs from profile files without importing them.
func (s *ProfileService) LoadFiles(ctx context.Context, paths []string) ([]*domain.Flamegraph, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no profile paths", domain.ErrInvalidInput)
	}

	profiles, err := s.reader.ReadFiles(ctx, paths)
	if err != nil {
		return nil, err
	}

	graphs := make([]*domain.Flamegraph, len(profiles))
	for i, p := range profiles {
		graphs[i] = BuildFlamegraph(paths[i], p)
	}
	return graphs, nil
}
