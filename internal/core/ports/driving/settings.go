package driving

import "github.com/custodia-labs/moviegraph-clean/internal/core/domain"

// SettingsService resolves pipeline options from configuration.
type SettingsService interface {
	// Get returns the configured options, falling back to defaults for
	// every key that is not set.
	Get() (domain.PipelineOptions, error)

	// GetDefaults returns default options.
	GetDefaults() domain.PipelineOptions

	// StageConfig returns the nested config map under stages.<name>,
	// or nil when the stage has none.
	StageConfig(name string) map[string]any
}
