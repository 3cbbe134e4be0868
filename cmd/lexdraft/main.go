// Command lexdraft is the entry point for the lexdraft CLI.
// It wires up the hexagonal architecture components and runs the
// command tree.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driven/backend"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driven/config/file"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driven/storage/memory"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driven/storage/sqlite"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/cli"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/services"
	"github.com/lexdraft-labs/lexdraft-cli/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Error("loading configuration: %v", err)
		os.Exit(1)
	}

	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Error("reading settings: %v", err)
		os.Exit(1)
	}
	logger.SetVerbose(settings.Verbose)

	// Pick up external edits to the config file while running.
	go func() {
		watchErr := configStore.Watch(ctx, func() {
			if s, err := settingsService.Get(); err == nil {
				logger.SetVerbose(s.Verbose)
			}
		})
		if watchErr != nil {
			logger.Debug("config watch stopped: %v", watchErr)
		}
	}()

	client := backend.NewClient(settings.BaseURL, settings.RequestTimeout)

	var sessionStore driven.SessionStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("local storage unavailable, sessions will not persist: %v", err)
		sessionStore = memory.NewSessionStore()
	} else {
		defer store.Close()
		sessionStore = store.SessionStore()
	}

	cli.SetServices(cli.Services{
		Chat:     services.NewChatService(client, sessionStore),
		Template: services.NewTemplateService(client),
		Upload:   services.NewUploadService(client),
		Draft:    services.NewDraftService(client),
		Settings: settingsService,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
