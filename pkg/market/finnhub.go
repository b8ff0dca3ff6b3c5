package market

import (
	"context"
	"fmt"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

func (c *FinnhubClient) Name() string {
	return "Finnhub"
}

// Lookup resolves an entity name to a ticker and returns its current quote.
// The 52-week range comes from basic financials and is best-effort; a failure
// there still returns the quote.
func (c *FinnhubClient) Lookup(name string) (*Quote, error) {
	ctx := context.Background()

	lookup, _, err := c.client.SymbolSearch(ctx).Q(name).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub symbol search: %w", err)
	}

	if lookup.Result == nil || len(*lookup.Result) == 0 {
		return nil, fmt.Errorf("finnhub: no symbol match for %q", name)
	}

	symbol := ""
	if s := (*lookup.Result)[0].Symbol; s != nil {
		symbol = *s
	}
	if symbol == "" {
		return nil, fmt.Errorf("finnhub: empty symbol for %q", name)
	}

	quote, _, err := c.client.Quote(ctx).Symbol(symbol).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub quote: %w", err)
	}

	q := &Quote{Ticker: symbol}
	if quote.C != nil {
		q.Price = float64(*quote.C)
	}

	financials, _, err := c.client.CompanyBasicFinancials(ctx).Symbol(symbol).Metric("all").Execute()
	if err == nil && financials.Metric != nil {
		metrics := *financials.Metric
		if high, ok := metrics["52WeekHigh"].(float64); ok {
			q.High52wk = high
		}
		if low, ok := metrics["52WeekLow"].(float64); ok {
			q.Low52wk = low
		}
	}

	return q, nil
}
