// Package cli provides the cobra command tree for flamesearch.
// Services are injected by main through SetServices before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/flamesearch/internal/core/ports/driving"
	"github.com/custodia-labs/flamesearch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var (
	frameSearchService driving.FrameSearchService
	profileService     driving.ProfileService
	settingsService    driving.SettingsService
)

// Services holds the driving ports used by the commands.
type Services struct {
	FrameSearch driving.FrameSearchService
	Profiles    driving.ProfileService
	Settings    driving.SettingsService
}

var rootCmd = &cobra.Command{
	Use:   "flamesearch",
	Short: "Search flamegraph frames by name",
	Long: `flamesearch finds frames in CPU and memory profiles.

Profiles are read from collapsed stack files ("a;b;c 42") or pprof files.
Queries wrapped in slashes are regular expressions (/^runtime\./i);
anything else is matched approximately.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	frameSearchService = s.FrameSearch
	profileService = s.Profiles
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
