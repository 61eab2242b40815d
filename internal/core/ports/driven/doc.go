// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TableLoader: Reads the input tables (CSV)
//   - TableWriter: Writes one output table (CSV or Parquet)
//   - Stage: One whole-table transformation
//   - StagePipeline: Runs stages in order with schema contract checks
//   - StageFactory: Builds the pipeline for a set of options
//
// # Optional Interfaces
//
//   - ConfigStore: Pipeline configuration. Without it, defaults and flags apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or stage package
package driven
