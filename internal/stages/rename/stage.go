// Package rename relabels columns to the names downstream consumers expect.
package rename

import (
	"context"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
)

// Name is the registry name of the stage.
const Name = "rename"

// Mapping renames one column of one table.
type Mapping struct {
	Role domain.TableRole
	From string
	To   string
}

// DefaultMappings returns the output schema: people birth -> birth_year,
// name -> full_name and stars person_id -> actor_id.
func DefaultMappings() []Mapping {
	return []Mapping{
		{Role: domain.RolePeople, From: domain.ColumnBirth, To: domain.ColumnBirthYear},
		{Role: domain.RolePeople, From: domain.ColumnName, To: domain.ColumnFullName},
		{Role: domain.RoleStars, From: domain.ColumnPersonID, To: domain.ColumnActorID},
	}
}

// Ensure Stage implements the interface.
var _ driven.Stage = (*Stage)(nil)

// Stage relabels columns. Cell values, row count and order are unchanged.
type Stage struct {
	mappings []Mapping
}

// Option configures the rename stage.
type Option func(*Stage)

// WithMappings replaces the default mappings.
func WithMappings(mappings ...Mapping) Option {
	return func(s *Stage) {
		if len(mappings) > 0 {
			s.mappings = mappings
		}
	}
}

// New creates a rename stage with the default mappings.
func New(opts ...Option) *Stage {
	s := &Stage{mappings: DefaultMappings()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return Name
}

// Mappings returns the configured renames.
func (s *Stage) Mappings() []Mapping {
	return s.mappings
}

// Requires returns every source column. A missing one fails the run
// before any column is relabelled.
func (s *Stage) Requires() domain.Requirement {
	req := domain.Requirement{}
	for _, m := range s.mappings {
		req[m.Role] = append(req[m.Role], m.From)
	}
	return req
}

// Apply relabels the columns in mapping order.
func (s *Stage) Apply(_ context.Context, ds *domain.Dataset) error {
	for _, m := range s.mappings {
		if err := ds.Table(m.Role).RenameColumn(m.From, m.To); err != nil {
			return err
		}
	}
	return nil
}
