package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

var (
	searchProfiles []string
	searchLimit    int
	searchAll      bool
	searchJSON     bool
	searchSelect   int
)

var searchCmd = &cobra.Command{
	Use:   "search <query> [files...]",
	Short: "Search frames in profiles",
	Long: `Searches the frames of one or more profiles by name.

A query wrapped in slashes is a regular expression with optional flags
(i, m, s; g and u are accepted and ignored): /^runtime\.(malloc|gc)/i
Any other query is matched approximately and tolerates small typos.

Files may be collapsed stacks or pprof profiles, and may be glob patterns
such as 'profiles/**/*.pb.gz'. Use --profile to search imported profiles.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchProfiles, "profile", nil, "imported profile IDs to search")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of matches (0 uses display.limit)")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "print every match")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output matches as JSON")
	searchCmd.Flags().IntVar(&searchSelect, "select", 0, "print the call path of the Nth match")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if frameSearchService == nil || profileService == nil {
		return errors.New("search service not configured")
	}

	query := args[0]
	paths, err := expandPaths(args[1:])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	set, err := loadProfileSet(ctx, paths, searchProfiles)
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{Limit: resolveLimit()}
	report, err := frameSearchService.Find(ctx, query, set, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchSelect > 0 {
		return outputSelected(cmd, set, report, searchSelect)
	}
	if searchJSON {
		return outputSearchJSON(cmd, set, report)
	}
	return outputSearchTable(cmd, set, report)
}

// resolveLimit applies --all, --limit and the display.limit setting.
func resolveLimit() int {
	if searchAll || searchSelect > 0 {
		return 0
	}
	if searchLimit > 0 {
		return searchLimit
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			return s.Display.Limit
		}
	}
	return domain.DefaultDisplayLimit
}

// loadProfileSet loads files then imported profiles into one set.
func loadProfileSet(ctx context.Context, paths, ids []string) (*domain.ProfileSet, error) {
	if len(paths) == 0 && len(ids) == 0 {
		return nil, errors.New("no profiles: pass profile files or --profile")
	}

	var graphs []*domain.Flamegraph
	if len(paths) > 0 {
		loaded, err := profileService.LoadFiles(ctx, paths)
		if err != nil {
			return nil, fmt.Errorf("loading profiles: %w", err)
		}
		graphs = append(graphs, loaded...)
	}
	for _, id := range ids {
		g, err := profileService.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading profile %s: %w", id, err)
		}
		graphs = append(graphs, g)
	}
	return domain.NewProfileSet(graphs...), nil
}

type matchJSON struct {
	Name    string   `json:"name"`
	Profile string   `json:"profile"`
	Depth   int      `json:"depth"`
	Start   float64  `json:"start"`
	End     float64  `json:"end"`
	Ranges  [][2]int `json:"ranges"`
}

type reportJSON struct {
	Query   string      `json:"query"`
	Mode    string      `json:"mode"`
	Total   int         `json:"total"`
	Matches []matchJSON `json:"matches"`
}

func outputSearchJSON(cmd *cobra.Command, set *domain.ProfileSet, report *domain.SearchReport) error {
	out := reportJSON{
		Query:   report.Query,
		Mode:    report.Mode.String(),
		Total:   report.Total,
		Matches: make([]matchJSON, len(report.Matches)),
	}
	for i, m := range report.Matches {
		ranges := make([][2]int, len(m.Ranges))
		for j, r := range m.Ranges {
			ranges[j] = [2]int{r.Start, r.End}
		}
		out.Matches[i] = matchJSON{
			Name:    m.Frame.Name,
			Profile: graphID(set, m.Frame),
			Depth:   m.Frame.Depth,
			Start:   m.Frame.Start,
			End:     m.Frame.End,
			Ranges:  ranges,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, set *domain.ProfileSet, report *domain.SearchReport) error {
	switch {
	case report.Mode == domain.SearchModeMalformed:
		cmd.Printf("Malformed query %q.\n", report.Query)
		return nil
	case len(report.Matches) == 0:
		cmd.Println("No frames found.")
		return nil
	}

	cmd.Printf("%d %s (%s)", report.Total, plural(report.Total, "match", "matches"), report.Mode)
	if len(report.Matches) < report.Total {
		cmd.Printf(", showing %d", len(report.Matches))
	}
	cmd.Println(":")
	cmd.Println()

	style := highlightStyle(cmd.OutOrStdout())
	multi := set.Len() > 1
	for i, m := range report.Matches {
		cmd.Printf("  [%d] %s\n", i+1, highlight(m.Frame.Name, m.Ranges, style))
		cmd.Printf("      depth %d  start %g  width %g", m.Frame.Depth, m.Frame.Start, m.Frame.Width())
		if multi {
			cmd.Printf("  %s", graphID(set, m.Frame))
		}
		cmd.Println()
	}
	return nil
}

func outputSelected(cmd *cobra.Command, set *domain.ProfileSet, report *domain.SearchReport, n int) error {
	if n > len(report.Matches) {
		return fmt.Errorf("--select %d: only %d %s", n, len(report.Matches), plural(len(report.Matches), "match", "matches"))
	}

	m := report.Matches[n-1]
	style := highlightStyle(cmd.OutOrStdout())
	cmd.Printf("%s\n", highlight(m.Frame.Name, m.Ranges, style))
	cmd.Printf("profile %s  depth %d  start %g  width %g\n", graphID(set, m.Frame), m.Frame.Depth, m.Frame.Start, m.Frame.Width())
	cmd.Println()

	path := callPath(set, m.Frame)
	for i, name := range path {
		cmd.Printf("%s%s\n", strings.Repeat("  ", i), name)
	}
	return nil
}

// callPath returns the names from the root down to frame, inclusive.
func callPath(set *domain.ProfileSet, frame domain.Frame) []string {
	if frame.Graph < 0 || frame.Graph >= set.Len() {
		return []string{frame.Name}
	}

	// Frames are in pre-order, so the ancestors of a frame are the last
	// frame seen at each shallower depth.
	var stack []domain.Frame
	for _, f := range set.Graphs[frame.Graph].Frames {
		if f.Depth < 0 || f.Depth > len(stack) {
			continue
		}
		stack = append(stack[:f.Depth], f)
		if f.Depth == frame.Depth && f.Start == frame.Start && f.Name == frame.Name {
			names := make([]string, len(stack))
			for i, s := range stack {
				names[i] = s.Name
			}
			return names
		}
	}
	return []string{frame.Name}
}

func graphID(set *domain.ProfileSet, f domain.Frame) string {
	if f.Graph < 0 || f.Graph >= set.Len() {
		return ""
	}
	return set.Graphs[f.Graph].ID
}

// highlightStyle returns the match style, or nil when w is not a terminal.
func highlightStyle(w io.Writer) *lipgloss.Style {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	s := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8C00"))
	return &s
}

// highlight renders the matched ranges of name with style.
// A nil style returns name unchanged.
func highlight(name string, ranges []domain.MatchRange, style *lipgloss.Style) string {
	if style == nil || len(ranges) == 0 {
		return name
	}

	var b strings.Builder
	pos := 0
	for _, r := range ranges {
		if r.Start < pos || r.End > len(name) || r.Start >= r.End {
			continue
		}
		b.WriteString(name[pos:r.Start])
		b.WriteString(style.Render(name[r.Start:r.End]))
		pos = r.End
	}
	b.WriteString(name[pos:])
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
