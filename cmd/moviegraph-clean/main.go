// Command moviegraph-clean prepares the movie, people and stars tables for
// the graph search application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/moviegraph-clean/internal/adapters/driven/config/file"
	"github.com/custodia-labs/moviegraph-clean/internal/adapters/driven/storage/csvfile"
	"github.com/custodia-labs/moviegraph-clean/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/moviegraph-clean/internal/adapters/driven/storage/parquetfile"
	"github.com/custodia-labs/moviegraph-clean/internal/adapters/driving/cli"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driving"
	"github.com/custodia-labs/moviegraph-clean/internal/core/services"
	"github.com/custodia-labs/moviegraph-clean/internal/stages"
)

func main() {
	registry := stages.NewRegistry()
	stages.RegisterDefaults(registry)

	loader := csvfile.NewLoader()
	writers := []driven.TableWriter{csvfile.NewWriter(), parquetfile.NewWriter()}

	cli.SetApp(&cli.App{
		OpenSettings: openSettings,
		NewCleaner: func(settings driving.SettingsService) driving.Cleaner {
			return services.NewCleanService(loader, registry, settings, writers)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// openSettings reads the TOML file at path, or uses an empty store when
// no file was given.
func openSettings(path string) (driving.SettingsService, error) {
	if path == "" {
		return services.NewSettingsService(memory.NewConfigStore()), nil
	}
	store, err := file.NewConfigStore(path)
	if err != nil {
		return nil, err
	}
	return services.NewSettingsService(store), nil
}
