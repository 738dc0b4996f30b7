package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Alias1177/FundFlow/internal/flow"
	"github.com/Alias1177/FundFlow/internal/model"
)

// fakeFetcher serves canned bars and depth, with per-market failures.
type fakeFetcher struct {
	failMarkets map[model.MarketKind]bool
}

func (f *fakeFetcher) GetKlines(ctx context.Context, market model.MarketKind, symbol string, interval model.Interval, limit int) ([]model.RawBar, error) {
	if f.failMarkets[market] {
		return nil, errors.New("fetch failed")
	}
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	raw := make([]model.RawBar, limit)
	for i := range raw {
		price := 100 + float64(i)
		raw[i] = model.RawBar{
			OpenTime:    base.Add(time.Duration(i) * time.Hour),
			CloseTime:   base.Add(time.Duration(i+1) * time.Hour),
			Open:        price,
			High:        price + 1,
			Low:         price - 1,
			Close:       price + 0.5,
			Volume:      1000,
			QuoteVolume: 1000 * price,
		}
	}
	return raw, nil
}

func (f *fakeFetcher) GetDepth(ctx context.Context, market model.MarketKind, symbol string, limit int) ([]model.PriceLevel, []model.PriceLevel, error) {
	if f.failMarkets[market] {
		return nil, nil, errors.New("fetch failed")
	}
	bids := []model.PriceLevel{{Price: 100, Quantity: 2}}
	asks := []model.PriceLevel{{Price: 101, Quantity: 2}}
	return bids, asks, nil
}

func newTestBuilder(fetcher Fetcher) *Builder {
	return NewBuilder(fetcher, flow.New(flow.VariantRegression), model.Interval1h, 12, 100)
}

func TestBuildBothMarkets(t *testing.T) {
	b := newTestBuilder(&fakeFetcher{})

	rep, err := b.Build(context.Background(), []string{"BTCUSDT", "ETHUSDT"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(rep.Symbols) != 2 {
		t.Fatalf("len(Symbols) = %d, want 2", len(rep.Symbols))
	}

	for _, entry := range rep.Symbols {
		if entry.Spot == nil || entry.Futures == nil {
			t.Fatalf("%s: missing market analysis", entry.Symbol)
		}
		if entry.Comparison == nil {
			t.Errorf("%s: Comparison = nil, want populated", entry.Symbol)
		}
		if len(entry.Spot.Bars) != 12 {
			t.Errorf("%s: len(Spot.Bars) = %d, want 12", entry.Symbol, len(entry.Spot.Bars))
		}
		if entry.Spot.Trend.Trend == model.TrendUnknown {
			t.Errorf("%s: trend stayed unknown on a 12-bar window", entry.Symbol)
		}
	}
}

func TestBuildFuturesFailure(t *testing.T) {
	b := newTestBuilder(&fakeFetcher{failMarkets: map[model.MarketKind]bool{model.MarketFutures: true}})

	rep, err := b.Build(context.Background(), []string{"BTCUSDT"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	entry := rep.Symbols[0]
	if entry.Spot == nil {
		t.Fatal("Spot = nil, want analysis")
	}
	if entry.Futures != nil {
		t.Errorf("Futures = %+v, want nil after fetch failure", entry.Futures)
	}
	if entry.Comparison != nil {
		t.Error("Comparison present with only one market analyzed")
	}
}

func TestBuildAllMarketsFail(t *testing.T) {
	b := newTestBuilder(&fakeFetcher{failMarkets: map[model.MarketKind]bool{
		model.MarketSpot:    true,
		model.MarketFutures: true,
	}})

	if _, err := b.Build(context.Background(), []string{"BTCUSDT"}); err == nil {
		t.Fatal("Build() error = nil, want error when nothing could be analyzed")
	}
}

func TestRenderText(t *testing.T) {
	b := newTestBuilder(&fakeFetcher{failMarkets: map[model.MarketKind]bool{model.MarketFutures: true}})

	rep, err := b.Build(context.Background(), []string{"BTCUSDT"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	text := rep.RenderText()
	for _, want := range []string{"BTCUSDT", "Spot", "unavailable"} {
		if !strings.Contains(text, want) {
			t.Errorf("RenderText() missing %q:\n%s", want, text)
		}
	}
}
