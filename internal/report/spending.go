package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finreport/internal/core"
)

// windowDays is the trailing window of the spending report. Fixed, not
// configurable per call.
const windowDays = 90

const targetDateLayout = "2006-01-02"

// CategoryReport maps a YYYY-MM period to the summed absolute expense for
// one category, or carries a message when nothing matched. Diagnostics
// list the rows dropped while cleaning; they are not part of the JSON
// artifact.
type CategoryReport struct {
	Category    string
	Message     string
	Totals      map[string]decimal.Decimal
	Diagnostics []core.Diagnostic
}

// MarshalJSON renders either the message sentinel or the totals object
// with months ascending. Amounts are bare numbers.
func (r CategoryReport) MarshalJSON() ([]byte, error) {
	if r.Message != "" {
		return json.Marshal(map[string]string{"message": r.Message})
	}

	months := make([]string, 0, len(r.Totals))
	for m := range r.Totals {
		months = append(months, m)
	}
	sort.Strings(months)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range months {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(r.Totals[m].String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SpendingByCategory sums absolute expenses of one category by calendar
// month over the trailing 90-day window ending at targetDate. An empty
// targetDate means now; otherwise it must be a YYYY-MM-DD calendar date.
// Rows with unparseable dates or amounts are dropped individually and
// recorded as diagnostics.
func SpendingByCategory(tbl *core.Table, category, targetDate string) (CategoryReport, error) {
	out := CategoryReport{Category: category}

	target := time.Now()
	if strings.TrimSpace(targetDate) != "" {
		t, err := time.Parse(targetDateLayout, strings.TrimSpace(targetDate))
		if err != nil {
			return out, fmt.Errorf("%w: target date %q must be YYYY-MM-DD", core.ErrInvalidInput, targetDate)
		}
		target = t
	}

	if missing := tbl.MissingColumns(core.ColDate, core.ColCategory, core.ColAmount); len(missing) > 0 {
		return out, &core.SchemaError{Missing: missing}
	}

	want := core.NormalizeCategory(category)
	start := target.AddDate(0, 0, -windowDays)

	var matched, inWindow bool
	totals := map[string]decimal.Decimal{}
	for i := 0; i < tbl.Len(); i++ {
		date, err := core.ParseOperationDate(tbl.Cell(i, core.ColDate))
		if err != nil {
			out.Diagnostics = append(out.Diagnostics, core.Diagnostic{Row: i, Column: core.ColDate, Reason: "unparseable operation date"})
			continue
		}
		amount, err := core.ParseAmount(tbl.Cell(i, core.ColAmount))
		if err != nil {
			out.Diagnostics = append(out.Diagnostics, core.Diagnostic{Row: i, Column: core.ColAmount, Reason: "unparseable amount"})
			continue
		}
		if !amount.IsNegative() {
			continue
		}
		if core.NormalizeCategory(tbl.Cell(i, core.ColCategory)) != want {
			continue
		}
		matched = true
		// Inclusive window on both ends.
		if date.Before(start) || date.After(target) {
			continue
		}
		inWindow = true
		month := date.Format("2006-01")
		totals[month] = totals[month].Add(amount.Abs())
	}

	if !matched {
		out.Message = fmt.Sprintf("Нет транзакций по категории '%s'", category)
		return out, nil
	}
	if !inWindow {
		out.Message = fmt.Sprintf("Нет транзакций по категории '%s' за последние 3 месяца", category)
		return out, nil
	}

	for m, v := range totals {
		totals[m] = core.Round2(v)
	}
	out.Totals = totals
	return out, nil
}
