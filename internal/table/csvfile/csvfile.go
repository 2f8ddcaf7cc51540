// Package csvfile loads the operations table from a local CSV export.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"finreport/internal/core"
	"finreport/internal/table"
)

type Source struct {
	path string
}

var _ table.RowSource = (*Source)(nil)

func New(path string) *Source {
	return &Source{path: path}
}

// Load reads the whole file. The first record is the header row; headers
// go through the canonical mapping. Ragged rows are tolerated, the table
// treats short rows as having empty trailing cells.
func (s *Source) Load(_ context.Context) (*core.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrSourceNotFound, s.path)
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return core.NewTable(nil, nil), nil
	}
	return core.NewTable(table.CanonicalHeaders(records[0]), records[1:]), nil
}
