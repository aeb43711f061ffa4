package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jdesmond91/trading-backend/internal/domain"
)

// fakeQuoteSource returns a scripted price or error and counts calls.
type fakeQuoteSource struct {
	price float64
	err   error
	calls int
}

func (f *fakeQuoteSource) Quote(ctx context.Context, ticker string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.price, nil
}

func TestOracle_FetchRoundsAndCaches(t *testing.T) {
	cache := NewCache(time.Minute)
	source := &fakeQuoteSource{price: 123.456}
	oracle := NewOracle(cache, source, time.Hour)

	price, err := oracle.Price(context.Background(), "RY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 123.46 {
		t.Errorf("price = %v, want 123.46", price)
	}

	cached, ok := cache.Get("RY")
	if !ok {
		t.Fatal("fetched price was not cached")
	}
	if cached != 123.46 {
		t.Errorf("cached price = %v, want 123.46", cached)
	}
}

func TestOracle_CacheHitSkipsFetch(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.SetWithExpiry("RY", 99.99, time.Hour)
	source := &fakeQuoteSource{price: 123.456}
	oracle := NewOracle(cache, source, time.Hour)

	price, err := oracle.Price(context.Background(), "RY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 99.99 {
		t.Errorf("price = %v, want cached 99.99", price)
	}
	if source.calls != 0 {
		t.Errorf("quote source called %d times, want 0", source.calls)
	}
}

func TestOracle_FetchFailure(t *testing.T) {
	cache := NewCache(time.Minute)
	source := &fakeQuoteSource{err: errors.New("connection refused")}
	oracle := NewOracle(cache, source, time.Hour)

	_, err := oracle.Price(context.Background(), "RY")
	if !errors.Is(err, domain.ErrPriceUnavailable) {
		t.Errorf("got %v, want ErrPriceUnavailable", err)
	}
	if source.calls != 1 {
		t.Errorf("quote source called %d times, want a single attempt", source.calls)
	}
}

func TestOracle_ExpiredCacheRefetches(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.SetWithExpiry("RY", 99.99, -time.Second)
	source := &fakeQuoteSource{price: 150}
	oracle := NewOracle(cache, source, time.Hour)

	price, err := oracle.Price(context.Background(), "RY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 150 {
		t.Errorf("price = %v, want refetched 150", price)
	}
	if source.calls != 1 {
		t.Errorf("quote source called %d times, want 1", source.calls)
	}
}
