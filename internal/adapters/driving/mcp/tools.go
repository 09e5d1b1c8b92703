package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// FindFramesInput is the input schema for the find_frames tool.
type FindFramesInput struct {
	Query      string   `json:"query" jsonschema:"frame name search; wrap in slashes for a regular expression, e.g. /^runtime\\./i"`
	Paths      []string `json:"paths,omitempty" jsonschema:"profile files to search (collapsed stacks or pprof)"`
	ProfileIDs []string `json:"profile_ids,omitempty" jsonschema:"IDs of imported profiles to search"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of matches to return (default 20)"`
}

// FindFramesOutput is the output schema for the find_frames tool.
type FindFramesOutput struct {
	Mode    string        `json:"mode"`
	Total   int           `json:"total"`
	Count   int           `json:"count"`
	Matches []FrameOutput `json:"matches"`
}

// FrameOutput is a single matched frame.
type FrameOutput struct {
	Name    string   `json:"name"`
	Profile string   `json:"profile"`
	Depth   int      `json:"depth"`
	Start   float64  `json:"start"`
	End     float64  `json:"end"`
	Ranges  [][2]int `json:"ranges"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_frames",
		Description: "Find flamegraph frames by name in profile files or imported profiles",
	}, s.handleFindFrames)
}

// handleFindFrames handles the find_frames tool invocation.
func (s *Server) handleFindFrames(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindFramesInput,
) (*mcp.CallToolResult, FindFramesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultDisplayLimit
	}

	set, err := s.loadProfiles(ctx, input.Paths, input.ProfileIDs)
	if err != nil {
		return nil, FindFramesOutput{}, err
	}

	report, err := s.ports.Search.Find(ctx, input.Query, set, domain.SearchOptions{Limit: limit})
	if err != nil {
		return nil, FindFramesOutput{}, err
	}

	output := FindFramesOutput{
		Mode:    report.Mode.String(),
		Total:   report.Total,
		Count:   len(report.Matches),
		Matches: make([]FrameOutput, len(report.Matches)),
	}
	for i, m := range report.Matches {
		output.Matches[i] = frameOutput(set, m)
	}
	return nil, output, nil
}

// loadProfiles builds the profile set named by a request, files first.
func (s *Server) loadProfiles(ctx context.Context, paths, ids []string) (*domain.ProfileSet, error) {
	if len(paths) == 0 && len(ids) == 0 {
		return nil, ErrNoProfiles
	}
	if s.ports.Profiles == nil {
		return nil, ErrMissingProfileService
	}

	var graphs []*domain.Flamegraph
	if len(paths) > 0 {
		loaded, err := s.ports.Profiles.LoadFiles(ctx, paths)
		if err != nil {
			return nil, fmt.Errorf("loading profiles: %w", err)
		}
		graphs = append(graphs, loaded...)
	}
	for _, id := range ids {
		g, err := s.ports.Profiles.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading profile %s: %w", id, err)
		}
		graphs = append(graphs, g)
	}
	return domain.NewProfileSet(graphs...), nil
}

func frameOutput(set *domain.ProfileSet, m domain.FrameMatch) FrameOutput {
	out := FrameOutput{
		Name:   m.Frame.Name,
		Depth:  m.Frame.Depth,
		Start:  m.Frame.Start,
		End:    m.Frame.End,
		Ranges: make([][2]int, len(m.Ranges)),
	}
	if g := m.Frame.Graph; g >= 0 && g < set.Len() {
		out.Profile = set.Graphs[g].ID
	}
	for i, r := range m.Ranges {
		out.Ranges[i] = [2]int{r.Start, r.End}
	}
	return out
}
