// Package parquetfile writes cleaned tables as Parquet files.
//
// Every column becomes an optional leaf: int columns are INT64, float
// columns DOUBLE and string columns UTF8 byte arrays. Nulls are stored as
// Parquet nulls. The index column name is recorded in the file's key/value
// metadata under IndexMetadataKey.
package parquetfile

import (
	"context"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/custodia-labs/moviegraph-clean/internal/adapters/driven/storage/atomicfile"
	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
)

// Extension is the file extension of Parquet tables.
const Extension = ".parquet"

// IndexMetadataKey holds the index column name in the file metadata.
const IndexMetadataKey = "moviegraph.index"

// Ensure Writer implements the interface.
var _ driven.TableWriter = (*Writer)(nil)

// Writer serialises tables as Parquet.
type Writer struct{}

// NewWriter creates a new Parquet writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Format returns domain.FormatParquet.
func (w *Writer) Format() domain.OutputFormat {
	return domain.FormatParquet
}

// Write stores the table as <dir>/<role output name>.parquet.
func (w *Writer) Write(ctx context.Context, dir string, role domain.TableRole, table *domain.Table) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return atomicfile.Write(dir, role.OutputFile()+Extension, func(out io.Writer) error {
		return Encode(out, table)
	})
}

// Schema builds the Parquet schema of a table.
func Schema(table *domain.Table) *parquet.Schema {
	group := make(parquet.Group, len(table.Columns))
	for _, col := range table.Columns {
		group[col.Name] = parquet.Optional(leaf(col.Kind))
	}
	return parquet.NewSchema(table.Name, group)
}

func leaf(kind domain.ColumnKind) parquet.Node {
	switch kind {
	case domain.KindInt:
		return parquet.Int(64)
	case domain.KindFloat:
		return parquet.Leaf(parquet.DoubleType)
	default:
		return parquet.String()
	}
}

// Encode writes the table to out as a single Parquet file.
func Encode(out io.Writer, table *domain.Table) error {
	schema := Schema(table)

	opts := []parquet.WriterOption{schema}
	if table.Index != "" {
		opts = append(opts, parquet.KeyValueMetadata(IndexMetadataKey, table.Index))
	}
	pw := parquet.NewWriter(out, opts...)

	// Leaf order follows the schema (sorted by name), not the table.
	paths := schema.Columns()
	positions := make([]int, len(paths))
	for i, path := range paths {
		positions[i] = table.ColumnIndex(path[0])
	}

	rows := make([]parquet.Row, 0, len(table.Rows))
	for r, cells := range table.Rows {
		row, err := deconstruct(table, positions, cells)
		if err != nil {
			return fmt.Errorf("row %d: %w", r, err)
		}
		rows = append(rows, row)
	}

	if _, err := pw.WriteRows(rows); err != nil {
		return err
	}
	return pw.Close()
}

// deconstruct turns one table row into a Parquet row in leaf order.
func deconstruct(table *domain.Table, positions []int, cells []domain.Value) (parquet.Row, error) {
	row := make(parquet.Row, len(positions))
	for leafIdx, pos := range positions {
		col := table.Columns[pos]
		v, err := toValue(col, cells[pos])
		if err != nil {
			return nil, err
		}
		if v.IsNull() {
			row[leafIdx] = v.Level(0, 0, leafIdx)
			continue
		}
		row[leafIdx] = v.Level(0, 1, leafIdx)
	}
	return row, nil
}

func toValue(col domain.Column, cell domain.Value) (parquet.Value, error) {
	if cell.IsNull() {
		return parquet.NullValue(), nil
	}
	switch col.Kind {
	case domain.KindInt:
		n, ok := cell.Int()
		if !ok {
			return parquet.Value{}, fmt.Errorf("%w: column %q: %q is not an integer",
				domain.ErrInvalidInput, col.Name, cell.Raw)
		}
		return parquet.Int64Value(n), nil
	case domain.KindFloat:
		f, ok := cell.Float()
		if !ok {
			return parquet.Value{}, fmt.Errorf("%w: column %q: %q is not a number",
				domain.ErrInvalidInput, col.Name, cell.Raw)
		}
		return parquet.DoubleValue(f), nil
	default:
		return parquet.ByteArrayValue([]byte(cell.Raw)), nil
	}
}
