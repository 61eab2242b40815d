// Package csvfile reads the input dataset from CSV files and writes cleaned
// tables back as CSV.
//
// Input files must have a header row. Empty cells are nulls. Column kinds
// (int, float, string) are inferred from the non-null cells.
//
// Output files are written through atomicfile, one file at a time. There is
// no transaction across files: a failure on the second table leaves the
// first one on disk.
package csvfile
