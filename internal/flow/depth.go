package flow

import (
	"fmt"
	"math"

	"github.com/Alias1177/FundFlow/internal/model"
)

// AggregateDepth reduces one depth snapshot to its aggregate statistics.
// Both sides must be non-empty, otherwise best bid/ask would be undefined.
func AggregateDepth(bids, asks []model.PriceLevel) (model.OrderBookStats, error) {
	if len(bids) == 0 {
		return model.OrderBookStats{}, fmt.Errorf("%w: empty bid side", model.ErrInvalidInput)
	}
	if len(asks) == 0 {
		return model.OrderBookStats{}, fmt.Errorf("%w: empty ask side", model.ErrInvalidInput)
	}

	var stats model.OrderBookStats
	stats.BestBid = bids[0].Price
	for _, lvl := range bids {
		stats.BidQuantity += lvl.Quantity
		stats.BidPressure += lvl.Price * lvl.Quantity
		if lvl.Price > stats.BestBid {
			stats.BestBid = lvl.Price
		}
	}
	stats.BestAsk = asks[0].Price
	for _, lvl := range asks {
		stats.AskQuantity += lvl.Quantity
		stats.AskPressure += lvl.Price * lvl.Quantity
		if lvl.Price < stats.BestAsk {
			stats.BestAsk = lvl.Price
		}
	}

	if total := stats.BidQuantity + stats.AskQuantity; total > 0 {
		stats.Imbalance = (stats.BidQuantity - stats.AskQuantity) / total
	}
	if stats.AskPressure == 0 {
		// Unbounded bid dominance; never clamped.
		stats.PressureRatio = math.Inf(1)
	} else {
		stats.PressureRatio = stats.BidPressure / stats.AskPressure
	}

	stats.Spread = stats.BestAsk - stats.BestBid
	if stats.BestBid > 0 {
		stats.SpreadPct = stats.Spread / stats.BestBid * 100
	}
	return stats, nil
}
