package stages

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
)

// BuilderFunc creates a Stage from generic config.
// Config is a map of stage-specific settings parsed from user config.
type BuilderFunc func(cfg map[string]any) (driven.Stage, error)

// Ensure Registry implements the interface.
var _ driven.StageFactory = (*Registry)(nil)

// Registry maps stage names to their builders.
// It allows dynamic construction of stages from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new stage registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a stage builder to the registry.
// Name should be unique and match the stage's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a stage by name with the given config.
// Returns error if the stage name is not registered.
func (r *Registry) Build(name string, cfg map[string]any) (driven.Stage, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown stage: %s", domain.ErrUnsupportedType, name)
	}
	return builder(cfg)
}

// Has returns true if a stage with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered stage names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Assemble builds every stage Plan selects for the options and chains them.
func (r *Registry) Assemble(opts domain.PipelineOptions, cfg func(stage string) map[string]any) (driven.StagePipeline, error) {
	p := NewPipeline()
	for _, name := range Plan(opts) {
		var stageCfg map[string]any
		if cfg != nil {
			stageCfg = cfg(name)
		}
		stage, err := r.Build(name, stageCfg)
		if err != nil {
			return nil, fmt.Errorf("build stage %s: %w", name, err)
		}
		p.Add(stage)
	}
	return p, nil
}
