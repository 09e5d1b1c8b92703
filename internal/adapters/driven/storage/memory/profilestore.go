package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore is an in-memory implementation of driven.ProfileStore.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.ProfileRecord
	data     map[string][]byte
}

// NewProfileStore creates a new in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]domain.ProfileRecord),
		data:     make(map[string][]byte),
	}
}

// SaveProfile stores or updates a profile. A missing ID is generated.
func (s *ProfileStore) SaveProfile(_ context.Context, profile *domain.ProfileRecord, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	s.profiles[profile.ID] = *profile
	s.data[profile.ID] = slices.Clone(data)
	return nil
}

// GetProfile retrieves a profile by ID.
func (s *ProfileStore) GetProfile(_ context.Context, id string) (*domain.ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// GetProfileData retrieves the raw bytes of a profile.
func (s *ProfileStore) GetProfileData(_ context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(data), nil
}

// FindByFingerprint retrieves a profile by content hash.
func (s *ProfileStore) FindByFingerprint(_ context.Context, fingerprint string) (*domain.ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.Fingerprint == fingerprint {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListProfiles returns all profiles, newest first.
func (s *ProfileStore) ListProfiles(_ context.Context) ([]domain.ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ProfileRecord, 0, len(s.profiles))
	for _, p := range s.profiles {
		result = append(result, p)
	}
	slices.SortFunc(result, func(a, b domain.ProfileRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

// DeleteProfile removes a profile.
func (s *ProfileStore) DeleteProfile(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, id)
	delete(s.data, id)
	return nil
}
