package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/FundFlow/internal/flow"
	"github.com/Alias1177/FundFlow/internal/model"
)

// Fetcher provides the already-fetched raw inputs the analysis core
// consumes. The core itself never retries or waits; all of that lives
// behind this interface.
type Fetcher interface {
	GetKlines(ctx context.Context, market model.MarketKind, symbol string, interval model.Interval, limit int) ([]model.RawBar, error)
	GetDepth(ctx context.Context, market model.MarketKind, symbol string, limit int) (bids, asks []model.PriceLevel, err error)
}

// MarketAnalysis bundles every derived record for one (symbol, market).
type MarketAnalysis struct {
	Symbol    string               `json:"symbol"`
	Market    model.MarketKind     `json:"market"`
	Bars      []model.Bar          `json:"-"`
	Book      model.OrderBookStats `json:"book"`
	Trend     model.TrendResult    `json:"trend"`
	Anomalies model.AnomalyReport  `json:"anomalies"`
	Pressure  model.PressureResult `json:"pressure"`
}

// SymbolReport holds both markets of one symbol plus their comparison.
// A market that failed to fetch is nil and the comparison is omitted.
type SymbolReport struct {
	Symbol     string                  `json:"symbol"`
	Spot       *MarketAnalysis         `json:"spot,omitempty"`
	Futures    *MarketAnalysis         `json:"futures,omitempty"`
	Comparison *model.ComparisonResult `json:"comparison,omitempty"`
}

// Report is one complete analysis run.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Interval    model.Interval `json:"interval"`
	WindowSize  int            `json:"window_size"`
	Symbols     []SymbolReport `json:"symbols"`
}

// Builder runs the full pipeline for a set of symbols.
type Builder struct {
	fetcher    Fetcher
	analyzer   *flow.Analyzer
	interval   model.Interval
	windowSize int
	depthLimit int
	logger     zerolog.Logger
}

// NewBuilder creates a report builder.
func NewBuilder(fetcher Fetcher, analyzer *flow.Analyzer, interval model.Interval, windowSize, depthLimit int) *Builder {
	return &Builder{
		fetcher:    fetcher,
		analyzer:   analyzer,
		interval:   interval,
		windowSize: windowSize,
		depthLimit: depthLimit,
		logger:     log.With().Str("component", "report").Logger(),
	}
}

// Build fetches and analyzes every (symbol, market) pair concurrently and
// assembles the cross-market report. A failed market is logged and left out
// of its symbol's entry; Build only errors when nothing could be analyzed.
func (b *Builder) Build(ctx context.Context, symbols []string) (*Report, error) {
	markets := []model.MarketKind{model.MarketSpot, model.MarketFutures}

	// One slot per (symbol, market) pair so no locking is needed.
	results := make([]*MarketAnalysis, len(symbols)*len(markets))
	var wg sync.WaitGroup
	for si, symbol := range symbols {
		for mi, market := range markets {
			wg.Add(1)
			go func(slot int, symbol string, market model.MarketKind) {
				defer wg.Done()
				analysis, err := b.analyzeMarket(ctx, symbol, market)
				if err != nil {
					b.logger.Warn().Err(err).
						Str("symbol", symbol).
						Str("market", string(market)).
						Msg("Market analysis skipped")
					return
				}
				results[slot] = analysis
			}(si*len(markets)+mi, symbol, market)
		}
	}
	wg.Wait()

	report := &Report{
		GeneratedAt: time.Now().UTC(),
		Interval:    b.interval,
		WindowSize:  b.windowSize,
	}

	var analyzed int
	for si, symbol := range symbols {
		entry := SymbolReport{
			Symbol:  symbol,
			Spot:    results[si*len(markets)],
			Futures: results[si*len(markets)+1],
		}
		if entry.Spot != nil {
			analyzed++
		}
		if entry.Futures != nil {
			analyzed++
		}
		if entry.Spot != nil && entry.Futures != nil {
			cmp := flow.Compare(entry.Spot.Bars, entry.Futures.Bars)
			entry.Comparison = &cmp
		}
		report.Symbols = append(report.Symbols, entry)
	}

	if analyzed == 0 {
		return nil, fmt.Errorf("no market could be analyzed for %v", symbols)
	}
	return report, nil
}

// analyzeMarket runs the pipeline for one (symbol, market) pair: fetch bars
// and depth, normalize, then derive every signal.
func (b *Builder) analyzeMarket(ctx context.Context, symbol string, market model.MarketKind) (*MarketAnalysis, error) {
	// Over-fetch by one bar so the forming candle can be dropped.
	raw, err := b.fetcher.GetKlines(ctx, market, symbol, b.interval, b.windowSize+1)
	if err != nil {
		return nil, err
	}
	bars, err := flow.NormalizeBars(raw)
	if err != nil {
		return nil, err
	}

	bidLevels, askLevels, err := b.fetcher.GetDepth(ctx, market, symbol, b.depthLimit)
	if err != nil {
		return nil, err
	}
	book, err := flow.AggregateDepth(bidLevels, askLevels)
	if err != nil {
		return nil, err
	}

	return &MarketAnalysis{
		Symbol:    symbol,
		Market:    market,
		Bars:      bars,
		Book:      book,
		Trend:     b.analyzer.Trend(bars),
		Anomalies: b.analyzer.Anomalies(bars),
		Pressure:  b.analyzer.Pressure(bars, book),
	}, nil
}
