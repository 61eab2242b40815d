// Package orphans removes people that no relationship row references.
package orphans

import (
	"context"
	"fmt"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
	"github.com/custodia-labs/moviegraph-clean/internal/logger"
)

// Name is the registry name of the stage.
const Name = "remove_orphans"

// Ensure Stage implements the interface.
var _ driven.Stage = (*Stage)(nil)

// Stage drops orphan people. Stars and movies are never touched.
type Stage struct{}

// New creates a new orphan filter stage.
func New() *Stage {
	return &Stage{}
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return Name
}

// Requires returns the columns the filter reads.
func (s *Stage) Requires() domain.Requirement {
	return domain.Requirement{
		domain.RolePeople: {domain.ColumnID},
		domain.RoleStars:  {domain.ColumnPersonID},
	}
}

// Apply removes every person whose id has no stars row.
func (s *Stage) Apply(_ context.Context, ds *domain.Dataset) error {
	removed, err := RemoveActorsNotInMovies(ds.People, ds.Stars)
	if err != nil {
		return err
	}
	logger.Info("removed %d people without movies (%d remain)", removed, ds.People.Len())
	return nil
}

// RemoveActorsNotInMovies removes the people rows whose id does not appear
// as a person_id in stars. Remaining rows keep their order.
// An empty stars table removes every person.
func RemoveActorsNotInMovies(people, stars *domain.Table) (int, error) {
	referenced, err := keySet(stars, domain.ColumnPersonID)
	if err != nil {
		return 0, err
	}

	idIdx := people.ColumnIndex(domain.ColumnID)
	if idIdx < 0 {
		return 0, fmt.Errorf("%w: table %q has no column %q",
			domain.ErrSchemaMismatch, people.Name, domain.ColumnID)
	}

	removed := people.Retain(func(row []domain.Value) bool {
		key, ok := row[idIdx].Key()
		if !ok {
			return false
		}
		_, found := referenced[key]
		return found
	})
	return removed, nil
}

// keySet collects the canonical keys of a column. Null cells are skipped.
func keySet(t *domain.Table, column string) (map[string]struct{}, error) {
	values, err := t.Values(column)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if key, ok := v.Key(); ok {
			set[key] = struct{}{}
		}
	}
	return set, nil
}
