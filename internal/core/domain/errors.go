package domain

import "errors"

// Domain errors represent pipeline failures.
// Adapters wrap them with file and column context.
var (
	// ErrNotFound indicates a requested entity (usually an input file) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown output format or stage name.
	ErrUnsupportedType = errors.New("unsupported type")

	// Table Errors.

	// ErrMalformedTable indicates a file could not be parsed as a table.
	ErrMalformedTable = errors.New("malformed table")

	// ErrSchemaMismatch indicates a stage found a table without a column it needs.
	ErrSchemaMismatch = errors.New("schema mismatch")
)
