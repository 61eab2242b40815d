// Package connectivity counts the relationship rows of every person.
package connectivity

import (
	"context"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
	"github.com/custodia-labs/moviegraph-clean/internal/logger"
)

// Name is the registry name of the stage.
const Name = "connectivity"

// Ensure Stage implements the interface.
var _ driven.Stage = (*Stage)(nil)

// Stage appends the connectivity column to the people table.
// It must run after the orphan filter; otherwise unmatched people get nulls.
type Stage struct{}

// New creates a new connectivity stage.
func New() *Stage {
	return &Stage{}
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return Name
}

// Requires returns the columns the aggregation reads.
func (s *Stage) Requires() domain.Requirement {
	return domain.Requirement{
		domain.RolePeople: {domain.ColumnID},
		domain.RoleStars:  {domain.ColumnPersonID},
	}
}

// Apply attaches the per-person count of stars rows.
func (s *Stage) Apply(_ context.Context, ds *domain.Dataset) error {
	missing, err := AddActorConnectivity(ds.People, ds.Stars)
	if err != nil {
		return err
	}
	if missing > 0 {
		logger.Warn("%d people have no stars rows; connectivity left null", missing)
	}
	return nil
}

// Count groups stars rows by person_id and counts the rows in each group.
// Rows with a null person_id belong to no group.
func Count(stars *domain.Table) (map[string]int64, error) {
	ids, err := stars.Values(domain.ColumnPersonID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	for _, v := range ids {
		if key, ok := v.Key(); ok {
			counts[key]++
		}
	}
	return counts, nil
}

// AddActorConnectivity left-joins the stars counts onto people by id and
// appends them as the nullable int column "connectivity". People keep their
// index and row order. It returns how many people had no matching group.
func AddActorConnectivity(people, stars *domain.Table) (int, error) {
	counts, err := Count(stars)
	if err != nil {
		return 0, err
	}
	ids, err := people.Values(domain.ColumnID)
	if err != nil {
		return 0, err
	}

	missing := 0
	values := make([]domain.Value, len(ids))
	for i, id := range ids {
		key, ok := id.Key()
		n, found := counts[key]
		if !ok || !found {
			values[i] = domain.NullValue()
			missing++
			continue
		}
		values[i] = domain.IntValue(n)
	}

	col := domain.Column{Name: domain.ColumnConnectivity, Kind: domain.KindInt}
	if err := people.AppendColumn(col, values); err != nil {
		return 0, err
	}
	return missing, nil
}
