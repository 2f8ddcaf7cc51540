// Package providers implements the external currency-rate and stock-quote
// collaborators of the dashboard.
package providers

import "context"

// CurrencyRate is one formatted entry of the dashboard's rate list.
type CurrencyRate struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}

// StockPrice is one quoted ticker symbol.
type StockPrice struct {
	Stock string  `json:"stock"`
	Price float64 `json:"price"`
}

// RateSource returns raw base-currency rates for the requested symbols.
type RateSource interface {
	Rates(ctx context.Context, symbols []string) (map[string]float64, error)
}

// QuoteSource returns current prices for the requested ticker symbols.
// Implementations tolerate per-symbol failures: a symbol that cannot be
// quoted is skipped, never aborting the batch.
type QuoteSource interface {
	Prices(ctx context.Context, symbols []string) ([]StockPrice, error)
}
