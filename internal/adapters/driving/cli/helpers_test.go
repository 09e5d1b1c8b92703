package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/flamesearch/internal/adapters/driven/fuzzy"
	"github.com/custodia-labs/flamesearch/internal/adapters/driven/profile"
	"github.com/custodia-labs/flamesearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/services"
)

// sampleStacks lays out as:
//
//	main        0..100
//	  serveFile   0..40
//	  serveHTTP  40..100
//	    parse    40..70
const sampleStacks = "main;serveHTTP;parse 30\nmain;serveHTTP 30\nmain;serveFile 40\n"

// setupTestServices wires real services over in-memory stores and resets
// command state when the test ends.
func setupTestServices(t *testing.T) {
	t.Helper()

	SetServices(Services{
		FrameSearch: services.NewFrameSearchService(
			services.NewMatchEngine(nil),
			fuzzy.NewFactory(domain.DefaultFuzzyThreshold),
		),
		Profiles: services.NewProfileService(memory.NewProfileStore(), profile.NewReader()),
		Settings: services.NewSettingsService(memory.NewConfigStore()),
	})

	t.Cleanup(func() {
		SetServices(Services{})
		tuiConfig = nil
		searchProfiles, searchLimit, searchAll, searchJSON, searchSelect = nil, 0, false, false, 0
		tuiProfiles, tuiQuery, tuiWatch = nil, "", false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
}

// execute runs the root command and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
