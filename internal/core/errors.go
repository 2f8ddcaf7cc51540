package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSourceNotFound = errors.New("data source not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidAmount  = errors.New("invalid amount")
)

// SchemaError reports required columns absent from the source table.
// It is always fatal and surfaces to the caller.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Diagnostic records a row dropped during a report pipeline, with the
// column that caused the drop. Diagnostics travel with the report value
// instead of being swallowed into logs.
type Diagnostic struct {
	Row    int
	Column string
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("row %d: %s (%s)", d.Row, d.Reason, d.Column)
}
