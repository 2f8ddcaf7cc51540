package report

import (
	"log/slog"
	"regexp"

	"github.com/shopspring/decimal"

	"finreport/internal/core"
)

// lastDigitsRe extracts the visible tail of a masked card number ("*7197").
var lastDigitsRe = regexp.MustCompile(`\*(\d{4})`)

// CardSummary is the per-card spend rollup of the dashboard. The cashback
// field is an estimate: one percent of the total spent.
type CardSummary struct {
	LastDigits string     `json:"last_digits"`
	TotalSpent core.Money `json:"total_spent"`
	Cashback   core.Money `json:"cashback"`
}

// CardSummaries groups expenses by the last four digits of the masked card
// number. Rows whose card cell does not match the *NNNN mask are skipped
// silently. A table without the needed columns is a recoverable failure:
// it is logged and yields an empty slice, never an error. Groups keep
// first-encountered order.
func CardSummaries(tbl *core.Table) []CardSummary {
	if missing := tbl.MissingColumns(core.ColCard, core.ColAmount); len(missing) > 0 {
		slog.Warn("card summaries skipped", "missing_columns", missing)
		return nil
	}

	totals := map[string]decimal.Decimal{}
	var order []string
	for i := 0; i < tbl.Len(); i++ {
		m := lastDigitsRe.FindStringSubmatch(tbl.Cell(i, core.ColCard))
		if m == nil {
			continue
		}
		amount, err := core.ParseAmount(tbl.Cell(i, core.ColAmount))
		if err != nil || !amount.IsNegative() {
			continue
		}
		key := m[1]
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] = totals[key].Add(amount.Abs())
	}

	out := make([]CardSummary, 0, len(order))
	for _, key := range order {
		spent := totals[key]
		out = append(out, CardSummary{
			LastDigits: key,
			TotalSpent: core.NewMoney(core.Round2(spent)),
			Cashback:   core.NewMoney(core.Round2(spent.Shift(-2))),
		})
	}
	return out
}
