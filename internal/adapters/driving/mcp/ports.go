package mcp

import (
	"github.com/custodia-labs/flamesearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs frame searches.
	Search driving.FrameSearchService

	// Profiles loads profile files and the profile library. Optional.
	Profiles driving.ProfileService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
