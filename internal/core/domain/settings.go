package domain

import (
	"fmt"
	"strings"
)

// OutputFormat is the file format the writer produces.
type OutputFormat string

// Available output formats.
const (
	// FormatCSV writes comma separated text files.
	FormatCSV OutputFormat = "csv"

	// FormatParquet writes columnar Parquet files.
	FormatParquet OutputFormat = "parquet"
)

// IsValid returns true if the format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatCSV, FormatParquet:
		return true
	default:
		return false
	}
}

// Extension returns the file extension including the dot.
func (f OutputFormat) Extension() string {
	return "." + string(f)
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat parses a case-insensitive format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: output format %q (want csv or parquet)", ErrUnsupportedType, s)
	}
	return f, nil
}

// PipelineOptions selects the optional stages and the output format.
type PipelineOptions struct {
	// Aggregate adds the per-person connectivity column.
	Aggregate bool

	// Normalize lower-cases and strips accents from person names.
	Normalize bool

	// OutputFormat selects the writer.
	OutputFormat OutputFormat
}

// DefaultPipelineOptions returns the options used when nothing is configured.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Aggregate:    false,
		Normalize:    true,
		OutputFormat: FormatCSV,
	}
}

// Validate checks the options are usable.
func (o PipelineOptions) Validate() error {
	if !o.OutputFormat.IsValid() {
		return fmt.Errorf("%w: output format %q", ErrUnsupportedType, o.OutputFormat)
	}
	return nil
}

// CleanRequest describes one pipeline invocation.
type CleanRequest struct {
	// InputDir contains movies.csv, people.csv and stars.csv.
	InputDir string

	// OutputDir is created if absent.
	OutputDir string

	Options PipelineOptions
}

// CleanResult summarises a finished run for logging.
type CleanResult struct {
	// RunID identifies the run in log lines.
	RunID string

	// Stages are the stage names that ran, in order.
	Stages []string

	// Files are the paths written, in write order.
	Files []string

	// Rows is the row count of each written table.
	Rows map[TableRole]int
}
