package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAggregate    = "pipeline.aggregate"
	keyNormalize    = "pipeline.normalize"
	keyOutputFormat = "output.format"

	stagesPrefix = "stages."
)

// SettingsService resolves pipeline options from configuration.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get returns the configured options. Unset keys take their defaults;
// an unknown output format is an error rather than a silent fallback.
func (s *SettingsService) Get() (domain.PipelineOptions, error) {
	opts := s.GetDefaults()

	opts.Aggregate = s.getBool(keyAggregate, opts.Aggregate)
	opts.Normalize = s.getBool(keyNormalize, opts.Normalize)

	if raw := s.configStore.GetString(keyOutputFormat); raw != "" {
		format, err := domain.ParseOutputFormat(raw)
		if err != nil {
			return opts, fmt.Errorf("%s in %s: %w", keyOutputFormat, s.configStore.Path(), err)
		}
		opts.OutputFormat = format
	}

	return opts, nil
}

// GetDefaults returns default options.
func (s *SettingsService) GetDefaults() domain.PipelineOptions {
	return domain.DefaultPipelineOptions()
}

// StageConfig rebuilds the nested map stored under stages.<name>.
// The key stages.rename.people.name becomes {"people": {"name": ...}}.
func (s *SettingsService) StageConfig(name string) map[string]any {
	prefix := stagesPrefix + name + "."

	var cfg map[string]any
	for _, key := range s.configStore.Keys() {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok || rest == "" {
			continue
		}
		val, _ := s.configStore.Get(key)
		if cfg == nil {
			cfg = make(map[string]any)
		}
		setNested(cfg, strings.Split(rest, "."), val)
	}
	return cfg
}

// setNested stores val at path, creating intermediate maps.
// A leaf already sitting where a map is needed is replaced.
func setNested(m map[string]any, path []string, val any) {
	for _, part := range path[:len(path)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[part] = next
		}
		m = next
	}
	m[path[len(path)-1]] = val
}

// getBool returns the stored bool or the default if absent or not a bool.
func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	b, ok := val.(bool)
	if !ok {
		return defaultVal
	}
	return b
}
