package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finreport/internal/core"
	"finreport/internal/providers"
)

// timestampLayout is the exact format the dashboard timestamp must carry.
const timestampLayout = "2006-01-02 15:04:05"

// topCount is the fixed size of the dashboard's top expense list.
const topCount = 5

// Greeting phrases by time of day.
const (
	greetingMorning = "Доброе утро"
	greetingDay     = "Добрый день"
	greetingEvening = "Добрый вечер"
	greetingNight   = "Доброй ночи"
)

// Dashboard is the composed JSON report.
type Dashboard struct {
	Greeting        string                   `json:"greeting"`
	Cards           []CardSummary            `json:"cards"`
	TopTransactions []TopTransaction         `json:"top_transactions"`
	CurrencyRates   []providers.CurrencyRate `json:"currency_rates"`
	StockPrices     []providers.StockPrice   `json:"stock_prices"`
}

// Greeting picks the phrase for the hour of ts, half-open boundaries:
// [5,12) morning, [12,17) day, [17,23) evening, otherwise night. A
// malformed timestamp falls back to the daytime phrase.
func Greeting(ts string) string {
	t, err := time.Parse(timestampLayout, ts)
	if err != nil {
		return greetingDay
	}
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return greetingMorning
	case h >= 12 && h < 17:
		return greetingDay
	case h >= 17 && h < 23:
		return greetingEvening
	default:
		return greetingNight
	}
}

// DashboardBuilder composes the dashboard from the row set and the
// external rate and quote providers configured for the user.
type DashboardBuilder struct {
	rates      providers.RateSource
	quotes     providers.QuoteSource
	currencies []string
	stocks     []string
	logger     *slog.Logger
}

func NewDashboardBuilder(rates providers.RateSource, quotes providers.QuoteSource, currencies, stocks []string, logger *slog.Logger) *DashboardBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardBuilder{
		rates:      rates,
		quotes:     quotes,
		currencies: currencies,
		stocks:     stocks,
		logger:     logger,
	}
}

// Build validates the timestamp and assembles the full dashboard from one
// row set. Provider failures are absorbed locally: rates fall back to the
// fixed table and quotes to an empty list, so the report is always
// produced once the timestamp checks out.
func (b *DashboardBuilder) Build(ctx context.Context, timestamp string, tbl *core.Table) (*Dashboard, error) {
	if _, err := time.Parse(timestampLayout, timestamp); err != nil {
		return nil, fmt.Errorf("%w: timestamp %q must be YYYY-MM-DD HH:MM:SS", core.ErrInvalidInput, timestamp)
	}

	// The aggregators return nil on their recoverable failures; the
	// dashboard arrays still serialize as [].
	cards := CardSummaries(tbl)
	if cards == nil {
		cards = []CardSummary{}
	}
	top := TopExpenses(tbl, topCount)
	if top == nil {
		top = []TopTransaction{}
	}

	return &Dashboard{
		Greeting:        Greeting(timestamp),
		Cards:           cards,
		TopTransactions: top,
		CurrencyRates:   b.currencyRates(ctx),
		StockPrices:     b.stockPrices(ctx),
	}, nil
}

func (b *DashboardBuilder) currencyRates(ctx context.Context) []providers.CurrencyRate {
	raw, err := b.rates.Rates(ctx, b.currencies)
	if err != nil {
		b.logger.Warn("currency provider failed, using fallback rates", "error", err)
		return providers.FallbackRates()
	}
	return providers.FormatRates(raw, b.currencies)
}

func (b *DashboardBuilder) stockPrices(ctx context.Context) []providers.StockPrice {
	prices, err := b.quotes.Prices(ctx, b.stocks)
	if err != nil {
		b.logger.Warn("stock provider failed, omitting stock prices", "error", err)
		return []providers.StockPrice{}
	}
	if prices == nil {
		prices = []providers.StockPrice{}
	}
	return prices
}
