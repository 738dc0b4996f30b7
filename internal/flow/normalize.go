package flow

import (
	"fmt"

	"github.com/Alias1177/FundFlow/internal/model"
)

// Buy share of a bar's volume under the heuristic split.
const (
	bullishBuyShare = 0.6
	bearishBuyShare = 0.4
)

// NormalizeBars turns raw kline rows into enriched bars. Callers over-fetch
// by one row so the still-forming final candle can be dropped here; the
// output is therefore one bar shorter than the input. Bars must be ordered
// ascending by time and all prices must be positive.
func NormalizeBars(raw []model.RawBar) ([]model.Bar, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("%w: no bars", model.ErrInvalidInput)
	}
	for i, r := range raw {
		if r.Open <= 0 || r.High <= 0 || r.Low <= 0 || r.Close <= 0 {
			return nil, fmt.Errorf("%w: non-positive price in bar %d", model.ErrInvalidInput, i)
		}
	}

	// The exchange returns the current, incomplete candle last.
	completed := raw[:len(raw)-1]

	bars := make([]model.Bar, 0, len(completed))
	for _, r := range completed {
		buyShare := bearishBuyShare
		if r.Close >= r.Open {
			buyShare = bullishBuyShare
		}
		buy := r.Volume * buyShare
		sell := r.Volume - buy // keeps buy+sell == volume exactly

		bars = append(bars, model.Bar{
			OpenTime:       r.OpenTime,
			CloseTime:      r.CloseTime,
			Open:           r.Open,
			High:           r.High,
			Low:            r.Low,
			Close:          r.Close,
			Volume:         r.Volume,
			QuoteVolume:    r.QuoteVolume,
			BuyVolume:      buy,
			SellVolume:     sell,
			NetInflow:      (buy - sell) * r.Close,
			PriceChangePct: (r.Close - r.Open) / r.Open * 100,
		})
	}
	return bars, nil
}
