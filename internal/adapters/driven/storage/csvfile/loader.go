package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
	"github.com/custodia-labs/moviegraph-clean/internal/logger"
)

// Extension is the file extension of CSV tables.
const Extension = ".csv"

const utf8BOM = "\ufeff"

// Ensure Loader implements the interface.
var _ driven.TableLoader = (*Loader)(nil)

// Loader reads movies.csv, people.csv and stars.csv from a directory.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the three tables. movies and people are indexed by id;
// stars must carry person_id and movie_id.
func (l *Loader) Load(ctx context.Context, dir string) (*domain.Dataset, error) {
	ds := &domain.Dataset{}

	for _, role := range domain.Roles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, role.InputFile()+Extension)
		t, err := ReadTable(path, string(role), role.IndexColumn())
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded %s: %d rows, columns %v", path, t.Len(), t.ColumnNames())

		switch role {
		case domain.RoleMovies:
			ds.Movies = t
		case domain.RolePeople:
			ds.People = t
		case domain.RoleStars:
			ds.Stars = t
		}
	}

	err := ds.Check("load", domain.Requirement{
		domain.RoleStars: {domain.ColumnPersonID, domain.ColumnMovieID},
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// ReadTable reads one CSV file. When index is non-empty the column must
// exist and is moved to the front.
func ReadTable(path, name, index string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: input table %s: %w", domain.ErrNotFound, path, err)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Decode(f, name, index)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// Decode parses CSV from r into a table.
func Decode(r io.Reader, name, index string) (*domain.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no header row", domain.ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedTable, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	columns, err := headerColumns(header)
	if err != nil {
		return nil, err
	}
	t := domain.NewTable(name, index, columns...)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedTable, err)
		}

		row := make([]domain.Value, len(record))
		for i, cell := range record {
			if cell == "" {
				row[i] = domain.NullValue()
				continue
			}
			row[i] = domain.StringValue(cell)
		}
		if err := t.AppendRow(row); err != nil {
			return nil, err
		}
	}

	for i := range t.Columns {
		values, _ := t.Values(t.Columns[i].Name)
		t.Columns[i].Kind = domain.InferKind(values)
	}

	if index != "" {
		if !t.HasColumn(index) {
			return nil, fmt.Errorf("%w: index column %q not in header %v",
				domain.ErrMalformedTable, index, t.ColumnNames())
		}
		if err := t.MoveToFront(index); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func headerColumns(header []string) ([]domain.Column, error) {
	seen := make(map[string]bool, len(header))
	columns := make([]domain.Column, len(header))
	for i, h := range header {
		if h == "" {
			return nil, fmt.Errorf("%w: header column %d is empty", domain.ErrMalformedTable, i+1)
		}
		if seen[h] {
			return nil, fmt.Errorf("%w: duplicate header column %q", domain.ErrMalformedTable, h)
		}
		seen[h] = true
		columns[i] = domain.Column{Name: h, Kind: domain.KindString}
	}
	return columns, nil
}
