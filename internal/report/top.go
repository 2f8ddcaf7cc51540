package report

import (
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finreport/internal/core"
)

// TopTransaction is one entry of the dashboard's top expense list.
type TopTransaction struct {
	Date        string     `json:"date"`
	Amount      core.Money `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
}

// TopExpenses returns the n largest expenses ranked by signed amount with
// keep-all-ties semantics. Amounts are negative, so "largest" means closest
// to zero; rows tied with the n-th value are all included, and the result
// may exceed n. The output amount is the absolute value.
//
// Unlike the other pipelines, this one is all-or-nothing about dates: any
// unparseable operation date among the expense rows empties the result.
func TopExpenses(tbl *core.Table, n int) []TopTransaction {
	if n <= 0 {
		return nil
	}
	if missing := tbl.MissingColumns(core.ColDate, core.ColAmount, core.ColCategory, core.ColDescription); len(missing) > 0 {
		slog.Warn("top expenses skipped", "missing_columns", missing)
		return nil
	}

	type expense struct {
		amount decimal.Decimal
		date   time.Time
		row    int
	}
	var expenses []expense
	for i := 0; i < tbl.Len(); i++ {
		amount, err := core.ParseAmount(tbl.Cell(i, core.ColAmount))
		if err != nil || !amount.IsNegative() {
			continue
		}
		date, err := core.ParseOperationDate(tbl.Cell(i, core.ColDate))
		if err != nil {
			slog.Warn("top expenses aborted", "row", i, "reason", "unparseable operation date")
			return nil
		}
		expenses = append(expenses, expense{amount: amount, date: date, row: i})
	}

	sort.SliceStable(expenses, func(a, b int) bool {
		return expenses[a].amount.GreaterThan(expenses[b].amount)
	})

	cut := n
	if cut > len(expenses) {
		cut = len(expenses)
	}
	for cut < len(expenses) && expenses[cut].amount.Equal(expenses[cut-1].amount) {
		cut++
	}

	out := make([]TopTransaction, 0, cut)
	for _, e := range expenses[:cut] {
		out = append(out, TopTransaction{
			Date:        e.date.Format(core.OutputDateLayout),
			Amount:      core.NewMoney(core.Round2(e.amount.Abs())),
			Category:    tbl.Cell(e.row, core.ColCategory),
			Description: tbl.Cell(e.row, core.ColDescription),
		})
	}
	return out
}
