package domain

import (
	"fmt"
	"slices"
)

// TableRole identifies one of the three tables of a Dataset.
type TableRole string

// Dataset table roles.
const (
	// RoleMovies is the movie table, indexed by id.
	RoleMovies TableRole = "movies"

	// RolePeople is the person (actor) table, indexed by id.
	RolePeople TableRole = "people"

	// RoleStars is the person-movie relationship table. It has no index.
	RoleStars TableRole = "stars"
)

// Roles lists every table role in load order.
var Roles = []TableRole{RoleMovies, RolePeople, RoleStars}

// InputFile returns the file stem the role is read from.
func (r TableRole) InputFile() string {
	return string(r)
}

// OutputFile returns the file stem the role is written to.
func (r TableRole) OutputFile() string {
	switch r {
	case RolePeople:
		return "actors"
	case RoleStars:
		return "connections"
	default:
		return string(r)
	}
}

// IndexColumn returns the primary key column for the role, if any.
func (r TableRole) IndexColumn() string {
	if r == RoleStars {
		return ""
	}
	return ColumnID
}

// Column labels read from and written to the dataset files.
const (
	ColumnID           = "id"
	ColumnName         = "name"
	ColumnBirth        = "birth"
	ColumnPersonID     = "person_id"
	ColumnMovieID      = "movie_id"
	ColumnConnectivity = "connectivity"
	ColumnFullName     = "full_name"
	ColumnBirthYear    = "birth_year"
	ColumnActorID      = "actor_id"
)

// Dataset holds the three tables of one pipeline run.
type Dataset struct {
	Movies *Table
	People *Table
	Stars  *Table
}

// Table returns the table for a role.
func (d *Dataset) Table(role TableRole) *Table {
	switch role {
	case RoleMovies:
		return d.Movies
	case RolePeople:
		return d.People
	case RoleStars:
		return d.Stars
	default:
		return nil
	}
}

// Requirement lists the columns a stage needs, per table.
type Requirement map[TableRole][]string

// Check verifies that every required column exists.
// The error names the stage, the table and the first missing column.
func (d *Dataset) Check(stage string, req Requirement) error {
	for _, role := range Roles {
		cols, ok := req[role]
		if !ok {
			continue
		}
		t := d.Table(role)
		if t == nil {
			return fmt.Errorf("%w: stage %q: table %q not loaded", ErrSchemaMismatch, stage, role)
		}
		for _, col := range cols {
			if !t.HasColumn(col) {
				return fmt.Errorf("%w: stage %q: table %q has no column %q (have %v)",
					ErrSchemaMismatch, stage, role, col, t.ColumnNames())
			}
		}
	}
	return nil
}

// Merge combines requirements, keeping column order and dropping duplicates.
func (r Requirement) Merge(other Requirement) Requirement {
	out := make(Requirement, len(r)+len(other))
	for _, src := range []Requirement{r, other} {
		for role, cols := range src {
			for _, c := range cols {
				if !slices.Contains(out[role], c) {
					out[role] = append(out[role], c)
				}
			}
		}
	}
	return out
}
