//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package validate enforces the data quality rules of the warehouse:
// completeness, consistency, and accuracy checks applied to every row
// before it is loaded. Violations are row-scoped values collected into
// a report; they never abort a batch. The one exception is a file whose
// columns do not match the entity contract, which is batch-fatal.
package validate

import (
	"fmt"

	"github.com/salesdw/salesdw/internal/model"
)

// Kind classifies a data quality violation.
type Kind string

const (
	// KindSchema is a field type or shape mismatch.
	KindSchema Kind = "SchemaViolation"

	// KindCompleteness is a missing required field.
	KindCompleteness Kind = "CompletenessViolation"

	// KindConsistency is an invalid date, a negative monetary or
	// quantity value, an out-of-set categorical value, or a
	// duplicate identifier.
	KindConsistency Kind = "ConsistencyViolation"

	// KindAccuracy is a computed field that does not match its
	// defining formula.
	KindAccuracy Kind = "AccuracyViolation"

	// KindReferential is a fact foreign key that does not resolve to
	// a dimension row valid as of the fact's date.
	KindReferential Kind = "ReferentialIntegrityError"
)

// RowError reports one violated rule on one row.
type RowError struct {
	Entity  model.Entity
	RowID   string // natural key of the row, if it could be read
	Line    int    // 1-based CSV line number, 0 if unknown
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	id := e.RowID
	if id == "" {
		id = fmt.Sprintf("line %d", e.Line)
	}
	return fmt.Sprintf("%s %s: %s: %s", e.Entity, id, e.Kind, e.Message)
}

// NewRowError builds a RowError with a formatted message.
func NewRowError(entity model.Entity, rowID string, line int, kind Kind, format string, args ...any) *RowError {
	return &RowError{
		Entity:  entity,
		RowID:   rowID,
		Line:    line,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// FileError is a batch-fatal violation: the file itself cannot be
// interpreted (wrong columns), so no row in it can be loaded.
type FileError struct {
	Entity  model.Entity
	Path    string
	Message string
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s (%s): %s: %s", e.Entity, e.Path, KindSchema, e.Message)
}
