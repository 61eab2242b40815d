package stages

import (
	"fmt"
	"maps"
	"slices"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
	"github.com/custodia-labs/moviegraph-clean/internal/stages/connectivity"
	"github.com/custodia-labs/moviegraph-clean/internal/stages/normalise"
	"github.com/custodia-labs/moviegraph-clean/internal/stages/orphans"
	"github.com/custodia-labs/moviegraph-clean/internal/stages/rename"
)

// RegisterDefaults registers all built-in stages with the registry.
// Call this during application initialisation to enable standard stages.
func RegisterDefaults(r *Registry) {
	r.Register(orphans.Name, func(map[string]any) (driven.Stage, error) {
		return orphans.New(), nil
	})
	r.Register(connectivity.Name, func(map[string]any) (driven.Stage, error) {
		return connectivity.New(), nil
	})
	r.Register(normalise.LowercaseName, buildLowercase)
	r.Register(normalise.StripAccentsName, buildStripAccents)
	r.Register(rename.Name, buildRename)
}

// Plan returns the stage names for the options, in run order:
// remove_orphans, [connectivity], [strip_accents, lowercase], rename.
func Plan(opts domain.PipelineOptions) []string {
	names := []string{orphans.Name}
	if opts.Aggregate {
		names = append(names, connectivity.Name)
	}
	if opts.Normalize {
		names = append(names, normalise.StripAccentsName, normalise.LowercaseName)
	}
	return append(names, rename.Name)
}

// buildLowercase creates the lower-casing stage from generic config.
// Supported config keys:
//   - column (string): people column to rewrite (default: name)
func buildLowercase(cfg map[string]any) (driven.Stage, error) {
	return normalise.NewLowercase(normalise.WithColumn(getStringFromConfig(cfg, "column"))), nil
}

// buildStripAccents creates the accent stripping stage from generic config.
// Supported config keys:
//   - column (string): people column to rewrite (default: name)
func buildStripAccents(cfg map[string]any) (driven.Stage, error) {
	return normalise.NewStripAccents(normalise.WithColumn(getStringFromConfig(cfg, "column"))), nil
}

// buildRename creates the rename stage from generic config.
// Supported config keys, each a table of old = new column names that
// replaces the defaults when any is present:
//   - movies, people, stars
func buildRename(cfg map[string]any) (driven.Stage, error) {
	var mappings []rename.Mapping
	for _, role := range domain.Roles {
		raw, ok := cfg[string(role)]
		if !ok {
			continue
		}
		table, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: rename.%s must be a table of column names", domain.ErrInvalidInput, role)
		}
		for _, from := range slices.Sorted(maps.Keys(table)) {
			to, ok := table[from].(string)
			if !ok || to == "" {
				return nil, fmt.Errorf("%w: rename.%s.%s must be a column name", domain.ErrInvalidInput, role, from)
			}
			mappings = append(mappings, rename.Mapping{Role: role, From: from, To: to})
		}
	}
	return rename.New(rename.WithMappings(mappings...)), nil
}

// getStringFromConfig safely extracts a string from generic config map.
func getStringFromConfig(cfg map[string]any, key string) string {
	if cfg == nil {
		return ""
	}
	s, _ := cfg[key].(string)
	return s
}
