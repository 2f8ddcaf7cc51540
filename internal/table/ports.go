// Package table defines the row-source port and the header mapping shared
// by its adapters.
package table

import (
	"context"
	"strings"

	"finreport/internal/core"
)

// RowSource loads the operations table from an external tabular source.
type RowSource interface {
	Load(ctx context.Context) (*core.Table, error)
}

// headerAliases maps the headers of the original bank export onto the
// canonical column names.
var headerAliases = map[string]string{
	"Дата операции": core.ColDate,
	"Статус":        core.ColStatus,
	"Категория":     core.ColCategory,
	"Сумма операции": core.ColAmount,
	"Номер карты":   core.ColCard,
	"Кэшбэк":        core.ColCashback,
	"Описание":      core.ColDescription,
}

// CanonicalHeader maps a source header to its canonical column name.
// Canonical names pass through unchanged; unknown headers are lowercased
// with spaces folded to underscores so ad-hoc exports still line up.
func CanonicalHeader(h string) string {
	h = strings.TrimSpace(h)
	if c, ok := headerAliases[h]; ok {
		return c
	}
	return strings.ReplaceAll(strings.ToLower(h), " ", "_")
}

// CanonicalHeaders maps a whole header row.
func CanonicalHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = CanonicalHeader(h)
	}
	return out
}
