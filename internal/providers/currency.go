package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// requestTimeout bounds every outbound provider call. Fixed, not
// configurable.
const requestTimeout = 10 * time.Second

// ratesBase is the currency the raw rates are quoted against.
const ratesBase = "RUB"

const defaultRatesURL = "https://api.apilayer.com/exchangerates_data"

// FallbackRates is the fixed table substituted when the rate provider is
// unavailable.
func FallbackRates() []CurrencyRate {
	return []CurrencyRate{
		{Currency: "USD", Rate: 73.21},
		{Currency: "EUR", Rate: 87.08},
	}
}

// ExchangeRatesClient fetches RUB-based rates from the apilayer
// exchangerates_data API.
type ExchangeRatesClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ RateSource = (*ExchangeRatesClient)(nil)

func NewExchangeRatesClient(apiKey string) *ExchangeRatesClient {
	return &ExchangeRatesClient{
		apiKey:  apiKey,
		baseURL: defaultRatesURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Rates implements RateSource.
func (c *ExchangeRatesClient) Rates(ctx context.Context, symbols []string) (map[string]float64, error) {
	if c.apiKey == "" {
		return nil, errors.New("currency API key is not set")
	}

	u := fmt.Sprintf("%s/latest?base=%s&symbols=%s",
		c.baseURL, ratesBase, url.QueryEscape(strings.Join(symbols, ",")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build currency request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch currency rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("currency rates: unexpected status %s", resp.Status)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode currency rates: %w", err)
	}
	return body.Rates, nil
}

// FormatRates converts raw base-per-unit rates into the dashboard shape:
// rate = 1/raw rounded to two decimals. A symbol the provider did not
// return counts as raw 1; a zero raw rate yields 0.
func FormatRates(raw map[string]float64, symbols []string) []CurrencyRate {
	out := make([]CurrencyRate, 0, len(symbols))
	for _, sym := range symbols {
		r, ok := raw[sym]
		if !ok {
			r = 1
		}
		var rate float64
		if r != 0 {
			rate, _ = decimal.NewFromInt(1).
				Div(decimal.NewFromFloat(r)).
				RoundBank(2).
				Float64()
		}
		out = append(out, CurrencyRate{Currency: sym, Rate: rate})
	}
	return out
}
