package report

import "finreport/internal/core"

// opsTable builds a full-width operations table for tests. Each row is
// [date, status, category, amount, card, cashback, description].
func opsTable(rows [][]string) *core.Table {
	return core.NewTable([]string{
		core.ColDate,
		core.ColStatus,
		core.ColCategory,
		core.ColAmount,
		core.ColCard,
		core.ColCashback,
		core.ColDescription,
	}, rows)
}
