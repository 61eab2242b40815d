// Package stages provides the whole-table transformations of the cleaning
// pipeline and the machinery to chain them.
package stages

import (
	"context"
	"fmt"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
	"github.com/custodia-labs/moviegraph-clean/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.StagePipeline = (*Pipeline)(nil)

// Pipeline chains multiple Stages and runs them in order.
// It implements the StagePipeline interface.
type Pipeline struct {
	stages []driven.Stage
}

// NewPipeline creates a new pipeline with the given stages.
// Stages are executed in the order provided.
func NewPipeline(stages ...driven.Stage) *Pipeline {
	return &Pipeline{
		stages: stages,
	}
}

// Run checks each stage's schema contract, then applies the stage.
// The first failing check or stage stops the run.
func (p *Pipeline) Run(ctx context.Context, ds *domain.Dataset) ([]string, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}

	ran := make([]string, 0, len(p.stages))

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return ran, err
		}

		if err := ds.Check(stage.Name(), stage.Requires()); err != nil {
			return ran, err
		}

		logger.Debug("stage %s: people=%d movies=%d stars=%d",
			stage.Name(), ds.People.Len(), ds.Movies.Len(), ds.Stars.Len())

		if err := stage.Apply(ctx, ds); err != nil {
			return ran, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
		ran = append(ran, stage.Name())
	}

	return ran, nil
}

// Add appends a stage to the pipeline.
func (p *Pipeline) Add(stage driven.Stage) {
	p.stages = append(p.stages, stage)
}

// Len returns the number of stages in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Names returns the stage names in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}
