package driven

import (
	"context"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
)

// Stage is one whole-table transformation of the cleaning pipeline.
// Stages are chained in a fixed order (filter, aggregate, normalise, rename).
type Stage interface {
	// Name returns the stage name for logging and configuration.
	Name() string

	// Requires returns the columns that must exist before Apply runs.
	Requires() domain.Requirement

	// Apply transforms the dataset in place.
	Apply(ctx context.Context, ds *domain.Dataset) error
}

// StagePipeline chains multiple Stages.
type StagePipeline interface {
	// Run checks each stage's requirements and applies it, in order.
	// Returns the names of the stages that ran.
	Run(ctx context.Context, ds *domain.Dataset) ([]string, error)
}

// StageFactory builds the stage pipeline for a run.
type StageFactory interface {
	// Assemble returns the pipeline selected by the options. cfg supplies the
	// config map of each stage by name and may return nil.
	Assemble(opts domain.PipelineOptions, cfg func(stage string) map[string]any) (StagePipeline, error)
}
