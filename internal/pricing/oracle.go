package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/jdesmond91/trading-backend/internal/domain"
)

// QuoteSource fetches a live market price for a ticker.
type QuoteSource interface {
	Quote(ctx context.Context, ticker string) (float64, error)
}

// Oracle resolves current prices, consulting the TTL cache before the
// external quote source. Fetched prices are rounded to 2 decimal
// places and cached for the configured TTL.
type Oracle struct {
	cache  *Cache
	source QuoteSource
	ttl    time.Duration
}

// NewOracle creates an Oracle caching fetched prices for ttl.
func NewOracle(cache *Cache, source QuoteSource, ttl time.Duration) *Oracle {
	return &Oracle{
		cache:  cache,
		source: source,
		ttl:    ttl,
	}
}

// Price returns the current price for a ticker. It returns an error
// wrapping domain.ErrPriceUnavailable when the cache misses and the
// external fetch fails. No retry is attempted beyond the single fetch.
func (o *Oracle) Price(ctx context.Context, ticker string) (float64, error) {
	if price, ok := o.cache.Get(ticker); ok {
		return price, nil
	}

	price, err := o.source.Quote(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrPriceUnavailable, ticker, err)
	}

	price = domain.Round2(price)
	o.cache.SetWithExpiry(ticker, price, o.ttl)
	return price, nil
}
