// Package domain defines the core entities of the cleaning pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Table: An in-memory table of nullable cells with an optional index column
//   - Dataset: The movies, people and stars tables of one run
//   - Requirement: The columns a pipeline stage needs, per table
//   - PipelineOptions: Which optional stages run and the output format
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
