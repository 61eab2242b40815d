package domain

import (
	"fmt"
	"slices"
)

// ColumnKind is the inferred storage type of a column.
type ColumnKind int

const (
	// KindString holds arbitrary text.
	KindString ColumnKind = iota

	// KindInt holds base-10 integers.
	KindInt

	// KindFloat holds floating point numbers.
	KindFloat
)

// String returns the string representation.
func (k ColumnKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Column describes one column of a Table.
type Column struct {
	Name string
	Kind ColumnKind
}

// Table is an in-memory, row-major table of nullable cells.
// Every row has exactly len(Columns) cells.
type Table struct {
	// Name identifies the table in logs and errors.
	Name string

	// Columns are the ordered column descriptors.
	Columns []Column

	// Index names the primary key column. Empty for unindexed tables.
	Index string

	// Rows holds the cell data.
	Rows [][]Value
}

// NewTable creates an empty table with the given columns.
func NewTable(name, index string, columns ...Column) *Table {
	return &Table{
		Name:    name,
		Columns: columns,
		Index:   index,
	}
}

// Len returns the number of rows. A nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnNames returns the ordered column labels.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Values returns a copy of the named column's cells in row order.
func (t *Table) Values(name string) ([]Value, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, t.missing(name)
	}
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// AppendRow adds a row. The row must match the column count.
func (t *Table) AppendRow(row []Value) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("%w: table %q: row has %d cells, want %d",
			ErrMalformedTable, t.Name, len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// AppendColumn adds a column at the end, one value per existing row.
func (t *Table) AppendColumn(col Column, values []Value) error {
	if t.HasColumn(col.Name) {
		return fmt.Errorf("%w: table %q already has column %q", ErrAlreadyExists, t.Name, col.Name)
	}
	if len(values) != len(t.Rows) {
		return fmt.Errorf("%w: column %q has %d values for %d rows",
			ErrInvalidInput, col.Name, len(values), len(t.Rows))
	}
	t.Columns = append(t.Columns, col)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// RenameColumn relabels a column. The index label follows the column.
func (t *Table) RenameColumn(from, to string) error {
	idx := t.ColumnIndex(from)
	if idx < 0 {
		return t.missing(from)
	}
	if from == to {
		return nil
	}
	if t.HasColumn(to) {
		return fmt.Errorf("%w: table %q already has column %q", ErrAlreadyExists, t.Name, to)
	}
	t.Columns[idx].Name = to
	if t.Index == from {
		t.Index = to
	}
	return nil
}

// MoveToFront moves the named column to position 0.
func (t *Table) MoveToFront(name string) error {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return t.missing(name)
	}
	if idx == 0 {
		return nil
	}
	col := t.Columns[idx]
	t.Columns = slices.Insert(slices.Delete(t.Columns, idx, idx+1), 0, col)
	for i, row := range t.Rows {
		v := row[idx]
		t.Rows[i] = slices.Insert(slices.Delete(row, idx, idx+1), 0, v)
	}
	return nil
}

// Retain keeps the rows for which keep returns true, preserving order.
// It returns the number of rows removed.
func (t *Table) Retain(keep func(row []Value) bool) int {
	before := len(t.Rows)
	t.Rows = slices.DeleteFunc(t.Rows, func(row []Value) bool {
		return !keep(row)
	})
	return before - len(t.Rows)
}

// MapColumn replaces every non-null cell of the named column with fn(cell).
// Null cells are left untouched. The first error from fn stops the walk.
func (t *Table) MapColumn(name string, fn func(string) (string, error)) error {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return t.missing(name)
	}
	for i, row := range t.Rows {
		if !row[idx].Valid {
			continue
		}
		out, err := fn(row[idx].Raw)
		if err != nil {
			return fmt.Errorf("table %q row %d column %q: %w", t.Name, i, name, err)
		}
		row[idx].Raw = out
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Name:    t.Name,
		Columns: slices.Clone(t.Columns),
		Index:   t.Index,
		Rows:    make([][]Value, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = slices.Clone(row)
	}
	return out
}

func (t *Table) missing(name string) error {
	return fmt.Errorf("%w: table %q has no column %q", ErrSchemaMismatch, t.Name, name)
}

// InferKind picks the narrowest kind that every non-null cell satisfies.
// A column with no non-null cells is a string column.
func InferKind(values []Value) ColumnKind {
	kind := KindInt
	seen := false
	for _, v := range values {
		if !v.Valid {
			continue
		}
		seen = true
		if kind == KindInt {
			if _, ok := v.Int(); ok {
				continue
			}
			kind = KindFloat
		}
		if _, ok := v.Float(); !ok {
			return KindString
		}
	}
	if !seen {
		return KindString
	}
	return kind
}
