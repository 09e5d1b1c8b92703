package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/logger"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	// NewSession creates the interactive search session.
	NewSession tui.SessionFactory

	// Watcher reloads profiles in --watch mode. Optional.
	Watcher driven.ProfileWatcher
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

var (
	tuiProfiles []string
	tuiQuery    string
	tuiWatch    bool
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [files...]",
	Short: "Search frames interactively",
	Long: `Launch an interactive frame search over one or more profiles.

Matches update as you type. The focused frame is shown with its position
in the graph.

Controls:
  ↓, ctrl+n, enter   Next match (wraps)
  ↑, ctrl+p          Previous match (wraps)
  ctrl+f             Toggle center/select focus
  ctrl+l             Clear the query
  esc, ctrl+c        Quit

With --watch, profile files are reloaded when they change and the
current query is re-run against the new frames.`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	tuiCmd.Flags().StringSliceVar(&tuiProfiles, "profile", nil, "imported profile IDs to search")
	tuiCmd.Flags().StringVarP(&tuiQuery, "query", "q", "", "query to run once profiles are loaded")
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "reload profile files when they change")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if tuiConfig == nil || tuiConfig.NewSession == nil || profileService == nil {
		return errors.New("tui not configured")
	}
	if tuiWatch {
		if tuiConfig.Watcher == nil {
			return errors.New("--watch: no file watcher configured")
		}
		if len(args) == 0 {
			return errors.New("--watch needs profile files")
		}
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	set, err := loadProfileSet(ctx, paths, tuiProfiles)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(
		&tui.Ports{NewSession: tuiConfig.NewSession, Settings: settingsService},
		tui.Options{InitialQuery: tuiQuery, Profiles: set},
	)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if tuiWatch {
		go watchProfiles(ctx, tuiConfig.Watcher, args, tuiProfiles, p.Send)
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// watchProfiles reloads the profile set whenever a watched file changes
// and sends the result to the program. Patterns are re-expanded on every
// change so new files matching a glob are picked up.
func watchProfiles(
	ctx context.Context,
	watcher driven.ProfileWatcher,
	patterns, ids []string,
	send func(tea.Msg),
) {
	err := watcher.Watch(ctx, patterns, func(changed []string) {
		logger.Debug("Profiles changed: %v", changed)
		paths, err := expandPaths(patterns)
		if err != nil {
			send(messages.ProfilesLoaded{Changed: changed, Err: err})
			return
		}
		set, err := loadProfileSet(ctx, paths, ids)
		send(messages.ProfilesLoaded{Set: set, Changed: changed, Err: err})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("watch stopped: %v", err)
		send(messages.Reported{Message: fmt.Sprintf("watch stopped: %v", err)})
	}
}
