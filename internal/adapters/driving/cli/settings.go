package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change search, display and watch settings.

Settings are stored in ~/.flamesearch/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  search.fuzzy_threshold  0..1, how loose approximate matching is (default 0.3)
  search.focus_intent     center or select (default center)
  display.limit           matches printed by search, 0 for all (default 20)
  watch.min_interval_ms   shortest time between reloads in watch mode (default 250)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Fuzzy threshold: %g\n", settings.Search.FuzzyThreshold)
	cmd.Printf("  Focus intent: %s\n", settings.Search.FocusIntent)
	cmd.Println()

	cmd.Println("[Display]")
	if settings.Display.Limit == 0 {
		cmd.Println("  Limit: all")
	} else {
		cmd.Printf("  Limit: %d\n", settings.Display.Limit)
	}
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Min interval: %s\n", settings.Watch.MinInterval)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w (keys: %v)", err, settingsService.Keys())
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
