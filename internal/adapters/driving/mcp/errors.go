// Package mcp provides an MCP (Model Context Protocol) server adapter for flamesearch.
// It lets AI assistants search the frames of local profiles and the profile library.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the frame search service is not provided.
	ErrMissingSearchService = errors.New("mcp: frame search service is required")

	// ErrMissingProfileService is returned when a request needs the profile library
	// but no profile service is configured.
	ErrMissingProfileService = errors.New("mcp: profile service is not configured")

	// ErrNoProfiles is returned when a search names neither paths nor profile IDs.
	ErrNoProfiles = errors.New("mcp: paths or profile_ids required")
)
