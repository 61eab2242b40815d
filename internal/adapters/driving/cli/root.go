// Package cli provides the cobra command line for moviegraph-clean.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driving"
	"github.com/custodia-labs/moviegraph-clean/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// App holds the constructors the root command needs. Both are called once
// the flags are parsed, because the config path is only known then.
type App struct {
	// OpenSettings loads the settings for a config file path.
	// An empty path means no config file.
	OpenSettings func(configPath string) (driving.SettingsService, error)

	// NewCleaner builds the cleaner for the resolved settings.
	NewCleaner func(settings driving.SettingsService) driving.Cleaner
}

// app holds the current application wiring.
var app *App

// SetApp sets the application wiring used by the root command.
func SetApp(a *App) {
	app = a
}

// Flag values.
var (
	aggregateFlag    bool
	normalizeFlag    bool
	outputFormatFlag string
	configFlag       string
	verboseFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "moviegraph-clean <input> <output>",
	Short: "Clean the movies, people and stars tables for the graph search",
	Long: `Reads movies.csv, people.csv and stars.csv from the input directory,
removes people without movies, optionally adds a connectivity column and
normalises names, renames columns, and writes movies, actors and connections
to the output directory.

Flags override values from --config, which override the defaults
(aggregate=false, normalize=true, output-format=csv).`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	RunE: runClean,
}

func init() {
	defaults := domain.DefaultPipelineOptions()
	rootCmd.Flags().BoolVar(&aggregateFlag, "aggregate", defaults.Aggregate,
		"add a connectivity column counting each actor's stars rows")
	rootCmd.Flags().BoolVar(&normalizeFlag, "normalize", defaults.Normalize,
		"strip accents from and lower-case actor names")
	rootCmd.Flags().StringVar(&outputFormatFlag, "output-format", defaults.OutputFormat.String(),
		"output file format (csv or parquet)")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print debug logs to stderr")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runClean(cmd *cobra.Command, args []string) error {
	if app == nil || app.OpenSettings == nil || app.NewCleaner == nil {
		return errors.New("application not configured")
	}

	settings, err := app.OpenSettings(configFlag)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts, err := resolveOptions(cmd, settings)
	if err != nil {
		return err
	}

	result, err := app.NewCleaner(settings).Clean(cmd.Context(), domain.CleanRequest{
		InputDir:  args[0],
		OutputDir: args[1],
		Options:   opts,
	})
	if err != nil {
		return err
	}

	for _, role := range []domain.TableRole{domain.RolePeople, domain.RoleMovies, domain.RoleStars} {
		cmd.Printf("%-12s %d rows\n", role.OutputFile(), result.Rows[role])
	}
	cmd.Printf("Wrote %d files to %s\n", len(result.Files), args[1])
	return nil
}

// resolveOptions applies explicitly set flags on top of the configured options.
func resolveOptions(cmd *cobra.Command, settings driving.SettingsService) (domain.PipelineOptions, error) {
	opts, err := settings.Get()
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("aggregate") {
		opts.Aggregate = aggregateFlag
	}
	if flags.Changed("normalize") {
		opts.Normalize = normalizeFlag
	}
	if flags.Changed("output-format") {
		format, err := domain.ParseOutputFormat(outputFormatFlag)
		if err != nil {
			return opts, err
		}
		opts.OutputFormat = format
	}

	logger.Debug("options: aggregate=%t normalize=%t format=%s", opts.Aggregate, opts.Normalize, opts.OutputFormat)
	return opts, nil
}
