package report

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"finreport/internal/core"
)

// CashbackEntry is one category total in a cashback report.
type CashbackEntry struct {
	Category string
	Amount   decimal.Decimal
}

// CashbackReport lists cashback totals per category, largest first. Equal
// totals sort by category name ascending, so the output is deterministic
// regardless of source row order.
type CashbackReport struct {
	Entries     []CashbackEntry
	Diagnostics []core.Diagnostic
}

// MarshalJSON renders an ordered JSON object, categories in report order.
func (r CashbackReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(e.Amount.String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CashbackByCategory sums cashback per category for the given month of the
// given year. Only rows whose status normalizes to OK and whose cashback
// is positive count. Rows with missing cashback are skipped silently; rows
// whose date or cashback cannot be parsed are dropped with a diagnostic.
// No qualifying rows is not an error, the report is simply empty.
func CashbackByCategory(tbl *core.Table, year, month int) (CashbackReport, error) {
	var out CashbackReport

	if missing := tbl.MissingColumns(core.ColDate, core.ColStatus, core.ColCashback, core.ColCategory); len(missing) > 0 {
		return out, &core.SchemaError{Missing: missing}
	}

	totals := map[string]decimal.Decimal{}
	for i := 0; i < tbl.Len(); i++ {
		date, err := core.ParseOperationDate(tbl.Cell(i, core.ColDate))
		if err != nil {
			out.Diagnostics = append(out.Diagnostics, core.Diagnostic{Row: i, Column: core.ColDate, Reason: "unparseable operation date"})
			continue
		}
		raw := strings.TrimSpace(tbl.Cell(i, core.ColCashback))
		if raw == "" {
			continue
		}
		cashback, err := core.ParseAmount(raw)
		if err != nil {
			out.Diagnostics = append(out.Diagnostics, core.Diagnostic{Row: i, Column: core.ColCashback, Reason: "non-numeric cashback"})
			continue
		}
		if date.Year() != year || int(date.Month()) != month {
			continue
		}
		if core.NormalizeStatus(tbl.Cell(i, core.ColStatus)) != core.StatusOK {
			continue
		}
		if !cashback.IsPositive() {
			continue
		}
		category := tbl.Cell(i, core.ColCategory)
		totals[category] = totals[category].Add(cashback)
	}

	out.Entries = make([]CashbackEntry, 0, len(totals))
	for category, amount := range totals {
		out.Entries = append(out.Entries, CashbackEntry{Category: category, Amount: amount})
	}
	sort.Slice(out.Entries, func(a, b int) bool {
		if !out.Entries[a].Amount.Equal(out.Entries[b].Amount) {
			return out.Entries[a].Amount.GreaterThan(out.Entries[b].Amount)
		}
		return out.Entries[a].Category < out.Entries[b].Category
	})
	return out, nil
}
