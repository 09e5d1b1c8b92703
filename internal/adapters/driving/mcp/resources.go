package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for flamesearch resources.
	uriScheme = "flamesearch://"
)

// profileInfo is the JSON form of a library entry.
type profileInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path,omitempty"`
	Format    string    `json:"format"`
	Samples   int       `json:"samples"`
	CreatedAt time.Time `json:"created_at"`
	Frames    int       `json:"frames,omitempty"`
	Total     float64   `json:"total,omitempty"`
}

func newProfileInfo(p *domain.ProfileRecord) profileInfo {
	return profileInfo{
		ID:        p.ID,
		Name:      p.Name,
		Path:      p.Path,
		Format:    p.Format.String(),
		Samples:   p.Samples,
		CreatedAt: p.CreatedAt,
	}
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "profiles",
		Name:        "profiles",
		Description: "Profiles imported into the library",
		MIMEType:    "application/json",
	}, s.handleProfilesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "profiles/{profileId}",
		Name:        "profile",
		Description: "An imported profile with its flamegraph size",
		MIMEType:    "application/json",
	}, s.handleProfileResource)
}

// handleProfilesResource lists the profile library.
func (s *Server) handleProfilesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Profiles == nil {
		return jsonResult(req.Params.URI, []profileInfo{})
	}

	profiles, err := s.ports.Profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	infos := make([]profileInfo, len(profiles))
	for i := range profiles {
		infos[i] = newProfileInfo(&profiles[i])
	}
	return jsonResult(req.Params.URI, infos)
}

// handleProfileResource describes one imported profile.
func (s *Server) handleProfileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Profiles == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractProfileID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Profiles.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	info := newProfileInfo(record)
	graph, err := s.ports.Profiles.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	info.Frames = len(graph.Frames)
	info.Total = graph.Total

	return jsonResult(req.Params.URI, info)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractProfileID extracts the profile ID from a URI like flamesearch://profiles/{profileId}.
func extractProfileID(uri string) string {
	const prefix = uriScheme + "profiles/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
