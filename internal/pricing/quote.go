package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNoQuote is returned when the quote endpoint answers but carries
// no usable price for the ticker.
var ErrNoQuote = errors.New("quote source returned no result")

// DefaultQuoteBaseURL is the Yahoo Finance v8 chart endpoint.
const DefaultQuoteBaseURL = "https://query2.finance.yahoo.com/v8/finance/chart"

// YahooQuoteClient fetches live quotes from a Yahoo Finance v8 chart
// endpoint. The HTTP client timeout bounds each fetch; callers decide
// whether to retry.
type YahooQuoteClient struct {
	baseURL string
	cli     *http.Client
}

// NewYahooQuoteClient creates a quote client against baseURL with the
// given per-request timeout.
func NewYahooQuoteClient(baseURL string, timeout time.Duration) *YahooQuoteClient {
	return &YahooQuoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		cli:     &http.Client{Timeout: timeout},
	}
}

// Quote returns the latest market price for a ticker. It prefers the
// regular market price from the chart metadata and falls back to the
// last non-zero close.
func (c *YahooQuoteClient) Quote(ctx context.Context, ticker string) (float64, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return 0, ErrNoQuote
	}

	url := fmt.Sprintf("%s/%s?interval=1m&range=1d", c.baseURL, ticker)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "trading-backend/1.0")

	resp, err := c.cli.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote source http %d", resp.StatusCode)
	}

	var raw struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice float64 `json:"regularMarketPrice"`
				} `json:"meta"`
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Close []float64 `json:"close"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
		} `json:"chart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, err
	}
	if len(raw.Chart.Result) == 0 {
		return 0, ErrNoQuote
	}

	r := raw.Chart.Result[0]
	price := r.Meta.RegularMarketPrice

	// Fallback: last non-zero close when the meta price is missing.
	if price <= 0 && len(r.Indicators.Quote) > 0 {
		closes := r.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] > 0 {
				price = closes[i]
				break
			}
		}
	}

	if price <= 0 {
		return 0, ErrNoQuote
	}
	return price, nil
}
