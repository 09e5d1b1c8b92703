package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the profile library",
	Long: `Import profiles into the local library so they can be searched by ID
without keeping the original files around.`,
}

var profileImportCmd = &cobra.Command{
	Use:   "import <files...>",
	Short: "Import profile files",
	Long: `Import collapsed stack or pprof files into the library.
Importing the same bytes twice keeps the existing entry.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProfileImport,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an imported profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileRemove,
}

func init() {
	profileCmd.AddCommand(profileImportCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileRemoveCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileImport(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	for _, path := range paths {
		record, err := profileService.Import(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		cmd.Printf("%s  %s (%s, %d samples)\n", record.ID, record.Name, record.Format, record.Samples)
	}
	return nil
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	profiles, err := profileService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(profiles) == 0 {
		cmd.Println("No profiles imported.")
		return nil
	}

	cmd.Println("Imported profiles:")
	cmd.Println()
	for i := range profiles {
		p := &profiles[i]
		cmd.Printf("  %s\n", p.ID)
		cmd.Printf("    Name:     %s\n", p.Name)
		cmd.Printf("    Format:   %s\n", p.Format)
		cmd.Printf("    Samples:  %d\n", p.Samples)
		cmd.Printf("    Imported: %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		cmd.Println()
	}
	cmd.Printf("Total: %d %s\n", len(profiles), plural(len(profiles), "profile", "profiles"))
	return nil
}

func runProfileRemove(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	if err := profileService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove profile: %w", err)
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}
