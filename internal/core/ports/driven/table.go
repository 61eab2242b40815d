package driven

import (
	"context"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
)

// TableLoader reads the movies, people and stars tables from a directory.
type TableLoader interface {
	// Load reads every table of the dataset.
	// Missing files wrap domain.ErrNotFound; unparseable files wrap
	// domain.ErrMalformedTable.
	Load(ctx context.Context, dir string) (*domain.Dataset, error)
}

// TableWriter serialises one table into an output directory.
type TableWriter interface {
	// Format returns the output format this writer produces.
	Format() domain.OutputFormat

	// Write stores the table under the role's output file name and returns
	// the path written. The directory is created if absent.
	Write(ctx context.Context, dir string, role domain.TableRole, table *domain.Table) (string, error)
}
