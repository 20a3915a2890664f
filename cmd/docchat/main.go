// Command docchat is a terminal client for a document question-answering backend.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/backend"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/historycache"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/notify"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docchat-cli/internal/core/services"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// version is set by the linker.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	err := cli.Execute(context.Background())
	_ = logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func bootstrap(opts cli.Options) (cli.Services, error) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return cli.Services{}, fmt.Errorf("load config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return cli.Services{}, fmt.Errorf("read settings: %w", err)
	}

	if settings.Log.File != "" {
		logFile := settings.Log.File
		if !filepath.IsAbs(logFile) {
			logFile = filepath.Join(configStore.Dir(), logFile)
		}
		if err := logger.Init(logger.Options{File: logFile}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
		}
	}
	logger.SetVerbose(opts.Verbose)

	baseURL := settings.Backend.BaseURL
	if opts.BackendURL != "" {
		baseURL = opts.BackendURL
	}
	client, err := backend.NewClient(backend.Config{
		BaseURL:           baseURL,
		Timeout:           settings.Backend.Timeout,
		RequestsPerSecond: settings.Backend.RequestsPerSecond,
	})
	if err != nil {
		return cli.Services{}, err
	}
	logger.Debug("Backend: %s", client.BaseURL())

	history := historycache.New(client, 0, 0)
	dispatcher := notify.NewDispatcher(os.Stderr)

	nav := services.NewNavigator(client)
	controller := services.NewQueryController(client, settings.Notices)
	registry := services.NewSessionRegistry(client, nav)
	workspace := services.NewWorkspace(nav, controller, registry, history, dispatcher)

	return cli.Services{
		Documents:  services.NewDocumentService(client, nav),
		Workspace:  workspace,
		Navigation: nav,
		Settings:   settingsService,
		Notices:    dispatcher,
	}, nil
}
