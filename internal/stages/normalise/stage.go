package normalise

import (
	"context"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
)

// Stage names used by the registry.
const (
	LowercaseName    = "lowercase"
	StripAccentsName = "strip_accents"
)

// Ensure Stage implements the interface.
var _ driven.Stage = (*Stage)(nil)

// Stage rewrites one people column with a text function.
// Null cells pass through unchanged.
type Stage struct {
	name   string
	column string
	fn     func(string) (string, error)
}

// Option configures a normalisation stage.
type Option func(*Stage)

// WithColumn sets the people column to rewrite. Defaults to "name".
func WithColumn(column string) Option {
	return func(s *Stage) {
		if column != "" {
			s.column = column
		}
	}
}

// NewLowercase creates the lower-casing stage.
func NewLowercase(opts ...Option) *Stage {
	return newStage(LowercaseName, func(v string) (string, error) {
		return MakeLowercase(v), nil
	}, opts)
}

// NewStripAccents creates the accent stripping stage.
func NewStripAccents(opts ...Option) *Stage {
	return newStage(StripAccentsName, RemoveAccents, opts)
}

func newStage(name string, fn func(string) (string, error), opts []Option) *Stage {
	s := &Stage{
		name:   name,
		column: domain.ColumnName,
		fn:     fn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return s.name
}

// Column returns the people column the stage rewrites.
func (s *Stage) Column() string {
	return s.column
}

// Requires returns the column the stage rewrites.
func (s *Stage) Requires() domain.Requirement {
	return domain.Requirement{
		domain.RolePeople: {s.column},
	}
}

// Apply rewrites every non-null cell of the column.
func (s *Stage) Apply(_ context.Context, ds *domain.Dataset) error {
	return ds.People.MapColumn(s.column, s.fn)
}
