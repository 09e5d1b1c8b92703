// Command flamesearch searches flamegraph frames in CPU and memory profiles.
package main

import (
	"os"

	"github.com/custodia-labs/flamesearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/flamesearch/internal/adapters/driven/fuzzy"
	"github.com/custodia-labs/flamesearch/internal/adapters/driven/profile"
	"github.com/custodia-labs/flamesearch/internal/adapters/driven/reporter"
	"github.com/custodia-labs/flamesearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/flamesearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/flamesearch/internal/adapters/driven/watcher"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/flamesearch/internal/adapters/driving/tui"
	"github.com/custodia-labs/flamesearch/internal/core/domain"
	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/core/services"
	"github.com/custodia-labs/flamesearch/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = ""

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	var configStore driven.ConfigStore
	fileConfig, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileConfig
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	var profileStore driven.ProfileStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Error("profile library unavailable, imports will not persist: %v", err)
		profileStore = memory.NewProfileStore()
	} else {
		defer store.Close()
		profileStore = store.ProfileStore()
	}

	reader := profile.NewReader()
	profileService := services.NewProfileService(profileStore, reader)

	indexFactory := fuzzy.NewFactory(settings.Search.FuzzyThreshold)
	frameSearch := services.NewFrameSearchService(
		services.NewMatchEngine(reporter.New(os.Stderr)),
		indexFactory,
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		FrameSearch: frameSearch,
		Profiles:    profileService,
		Settings:    settingsService,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		NewSession: func(initialQuery string, r driven.Reporter) tui.Session {
			session := services.NewSearchSession(services.NewMatchEngine(r), indexFactory, initialQuery)
			session.SetFocusIntent(settings.Search.FocusIntent)
			return session
		},
		Watcher: watcher.New(settings.Watch.MinInterval),
	})

	// cobra has already printed the error
	return cli.Execute()
}
