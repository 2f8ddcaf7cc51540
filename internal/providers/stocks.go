package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultQuotesURL = "https://www.alphavantage.co"

// maxConcurrentQuotes bounds the parallel per-symbol requests.
const maxConcurrentQuotes = 4

// AlphaVantageClient fetches GLOBAL_QUOTE prices, one request per symbol.
// Symbols are quoted in parallel; a failed symbol is logged and skipped.
type AlphaVantageClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ QuoteSource = (*AlphaVantageClient)(nil)

func NewAlphaVantageClient(apiKey string, logger *slog.Logger) *AlphaVantageClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlphaVantageClient{
		apiKey:  apiKey,
		baseURL: defaultQuotesURL,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Price string `json:"05. price"`
	} `json:"Global Quote"`
	Note string `json:"Note"`
}

// Prices implements QuoteSource. Results keep the requested symbol order,
// with unquotable symbols left out.
func (c *AlphaVantageClient) Prices(ctx context.Context, symbols []string) ([]StockPrice, error) {
	if c.apiKey == "" {
		return nil, errors.New("stock API key is not set")
	}

	results := make([]*StockPrice, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQuotes)
	for i, sym := range symbols {
		g.Go(func() error {
			price, err := c.quote(gctx, sym)
			if err != nil {
				// Partial failure per symbol never aborts the batch.
				c.logger.Warn("stock quote failed", "symbol", sym, "error", err)
				return nil
			}
			results[i] = &StockPrice{Stock: sym, Price: price}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]StockPrice, 0, len(symbols))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (c *AlphaVantageClient) quote(ctx context.Context, symbol string) (float64, error) {
	u := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("build quote request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote: unexpected status %s", resp.Status)
	}

	var body globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode quote: %w", err)
	}
	if body.GlobalQuote.Price == "" {
		if body.Note != "" {
			return 0, fmt.Errorf("no quote data: %s", body.Note)
		}
		return 0, errors.New("no quote data")
	}

	raw, err := strconv.ParseFloat(body.GlobalQuote.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse quote price %q: %w", body.GlobalQuote.Price, err)
	}
	price, _ := decimal.NewFromFloat(raw).RoundBank(2).Float64()
	return price, nil
}
