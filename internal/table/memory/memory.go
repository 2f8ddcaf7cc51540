// Package memory provides an in-memory row source, used by tests and by
// the memory backend.
package memory

import (
	"context"
	"sync"

	"finreport/internal/core"
	"finreport/internal/table"
)

type Store struct {
	mu      sync.Mutex
	columns []string
	rows    [][]string
}

var _ table.RowSource = (*Store)(nil)

// New builds a store over the given header row and data rows. Headers go
// through the canonical mapping, so both export and canonical names work.
func New(columns []string, rows [][]string) *Store {
	return &Store{columns: table.CanonicalHeaders(columns), rows: rows}
}

// Append adds one data row.
func (s *Store) Append(row []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
}

// Load implements table.RowSource.
func (s *Store) Load(_ context.Context) (*core.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([][]string, len(s.rows))
	for i, r := range s.rows {
		rows[i] = append([]string(nil), r...)
	}
	return core.NewTable(append([]string(nil), s.columns...), rows), nil
}
