package core

// Canonical column names of the operations table. Loaders translate
// source-specific headers into these before building a Table.
const (
	ColDate        = "operation_date"
	ColStatus      = "status"
	ColCategory    = "category"
	ColAmount      = "amount"
	ColCard        = "card_number"
	ColCashback    = "cashback"
	ColDescription = "description"
)

// Table is a read-only row set with named columns. Cells are kept as the
// strings delivered by the source; typed parsing happens inside each
// report pipeline, which decides per row what to do with bad cells.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

func NewTable(columns []string, rows [][]string) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Table{columns: columns, index: index, rows: rows}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the column names in source order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// MissingColumns returns the subset of names absent from the table,
// preserving the requested order.
func (t *Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, n := range names {
		if !t.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// Cell returns the value at row i for the named column. Absent columns
// and ragged rows yield the empty string.
func (t *Table) Cell(i int, name string) string {
	col, ok := t.index[name]
	if !ok || i < 0 || i >= len(t.rows) || col >= len(t.rows[i]) {
		return ""
	}
	return t.rows[i][col]
}
