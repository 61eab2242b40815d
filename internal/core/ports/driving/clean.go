package driving

import (
	"context"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
)

// Cleaner runs the cleaning pipeline once: load, transform, write.
type Cleaner interface {
	// Clean executes every stage selected by the request options.
	// Nothing is retried; the first error aborts the run.
	Clean(ctx context.Context, req domain.CleanRequest) (*domain.CleanResult, error)
}
