package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/custodia-labs/moviegraph-clean/internal/adapters/driven/storage/atomicfile"
	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.TableWriter = (*Writer)(nil)

// Writer serialises tables as CSV with a header row.
type Writer struct{}

// NewWriter creates a new CSV writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Format returns domain.FormatCSV.
func (w *Writer) Format() domain.OutputFormat {
	return domain.FormatCSV
}

// Write stores the table as <dir>/<role output name>.csv.
func (w *Writer) Write(ctx context.Context, dir string, role domain.TableRole, table *domain.Table) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return atomicfile.Write(dir, role.OutputFile()+Extension, func(out io.Writer) error {
		return Encode(out, table)
	})
}

// Encode writes the table as CSV. The index column, when set, comes first;
// tables without an index are written without one. Nulls become empty
// cells and numeric cells are re-rendered from their parsed value, so a
// float column holding whole numbers has no fractional part.
func Encode(out io.Writer, table *domain.Table) error {
	order := columnOrder(table)

	cw := csv.NewWriter(out)

	header := make([]string, len(order))
	for i, idx := range order {
		header[i] = table.Columns[idx].Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(order))
	for r, row := range table.Rows {
		for i, idx := range order {
			cell, err := formatCell(table.Columns[idx], row[idx])
			if err != nil {
				return fmt.Errorf("row %d: %w", r, err)
			}
			record[i] = cell
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// columnOrder returns column positions with the index column first.
func columnOrder(table *domain.Table) []int {
	order := make([]int, 0, len(table.Columns))
	indexPos := -1
	if table.Index != "" {
		indexPos = table.ColumnIndex(table.Index)
	}
	if indexPos >= 0 {
		order = append(order, indexPos)
	}
	for i := range table.Columns {
		if i != indexPos {
			order = append(order, i)
		}
	}
	return order
}

func formatCell(col domain.Column, v domain.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	switch col.Kind {
	case domain.KindInt:
		n, ok := v.Int()
		if !ok {
			return "", fmt.Errorf("%w: column %q: %q is not an integer", domain.ErrInvalidInput, col.Name, v.Raw)
		}
		return strconv.FormatInt(n, 10), nil
	case domain.KindFloat:
		f, ok := v.Float()
		if !ok {
			return "", fmt.Errorf("%w: column %q: %q is not a number", domain.ErrInvalidInput, col.Name, v.Raw)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	default:
		return v.Raw, nil
	}
}
