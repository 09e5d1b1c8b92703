package mcp

import (
	"context"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.FrameSearchService.
type mockSearchService struct {
	report *domain.SearchReport
	err    error

	gotQuery string
	gotSet   *domain.ProfileSet
	gotOpts  domain.SearchOptions
}

func (m *mockSearchService) Find(
	_ context.Context,
	query string,
	set *domain.ProfileSet,
	opts domain.SearchOptions,
) (*domain.SearchReport, error) {
	m.gotQuery = query
	m.gotSet = set
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &domain.SearchReport{Query: query, Mode: domain.SearchModeApproximate}, nil
	}
	return m.report, nil
}

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	profiles []domain.ProfileRecord
	graphs   map[string]*domain.Flamegraph
	err      error
}

func (m *mockProfileService) Import(_ context.Context, _ string) (*domain.ProfileRecord, error) {
	return nil, m.err
}

func (m *mockProfileService) List(_ context.Context) ([]domain.ProfileRecord, error) {
	return m.profiles, m.err
}

func (m *mockProfileService) Get(_ context.Context, id string) (*domain.ProfileRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.profiles {
		if m.profiles[i].ID == id {
			return &m.profiles[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockProfileService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockProfileService) Load(_ context.Context, id string) (*domain.Flamegraph, error) {
	if m.err != nil {
		return nil, m.err
	}
	g, ok := m.graphs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func (m *mockProfileService) LoadFiles(_ context.Context, paths []string) ([]*domain.Flamegraph, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Flamegraph, 0, len(paths))
	for _, p := range paths {
		g, ok := m.graphs[p]
		if !ok {
			return nil, domain.ErrNotFound
		}
		out = append(out, g)
	}
	return out, nil
}
