package flow

import (
	"math"

	"github.com/Alias1177/FundFlow/internal/model"
)

const (
	pressureWindow = 10
	reversalWindow = 5

	// Score weights for the combined pressure estimate.
	weightInflowRatio     = 0.4
	weightVolumeImbalance = 0.2
	weightValueImbalance  = 0.2
	weightNearImbalance   = 0.2
)

// AnalyzePressure combines recent flow ratios with order-book imbalance into
// a directional call. The book's imbalance is passed through to the result
// unmodified.
func AnalyzePressure(bars []model.Bar, book model.OrderBookStats) model.PressureResult {
	n := len(bars)
	if n > pressureWindow {
		n = pressureWindow
	}
	recent := bars[len(bars)-n:]

	var avgInflowRatio float64
	if n > 0 {
		var s float64
		for _, b := range recent {
			if b.QuoteVolume != 0 {
				s += b.NetInflow / b.QuoteVolume
			}
		}
		avgInflowRatio = s / float64(n)
	}

	volumeImbalance := book.Imbalance
	var valueImbalance float64
	if total := book.BidPressure + book.AskPressure; total != 0 {
		valueImbalance = book.BidPressure/total - 0.5
	}
	// Placeholder: the near-touch imbalance is not computed separately yet
	// and mirrors the full-book value.
	nearVolumeImbalance := volumeImbalance

	score := weightInflowRatio*avgInflowRatio +
		weightVolumeImbalance*volumeImbalance +
		weightValueImbalance*valueImbalance +
		weightNearImbalance*nearVolumeImbalance

	var (
		dir      model.PressureDirection
		strength float64
		strong   bool
	)
	switch {
	case score > 0.1:
		dir = model.PressureUpward
		strength = math.Min(score*5, 1)
		strong = strength > 0.7
	case score < -0.1:
		dir = model.PressureDownward
		strength = math.Min(-score*5, 1)
		strong = strength > 0.7
	default:
		dir = model.PressureNeutral
		strength = math.Abs(score) * 5
	}

	// Reversal override: a sharp recent move against the book's lean takes
	// precedence over the score-based direction. Confidence keeps the
	// pre-override strength.
	recentChange := meanPriceChange(bars, reversalWindow)
	if recentChange < -1.0 && volumeImbalance > 0.1 {
		dir = model.PressureReversalUp
	} else if recentChange > 1.0 && volumeImbalance < -0.1 {
		dir = model.PressureReversalDown
	}

	return model.PressureResult{
		Direction:     dir,
		Strong:        strong,
		Confidence:    strength,
		Imbalance:     book.Imbalance,
		PressureRatio: book.PressureRatio,
		Metrics: model.PressureMetrics{
			AvgInflowRatio:      avgInflowRatio,
			VolumeImbalance:     volumeImbalance,
			ValueImbalance:      valueImbalance,
			NearVolumeImbalance: nearVolumeImbalance,
			Score:               score,
			RecentPriceChange:   recentChange,
		},
	}
}

// AnalyzePressureWindowed is the legacy book-first heuristic: the order-book
// lean and the last bar's inflow ratio split the weight evenly and there is
// no reversal rule. Kept selectable alongside AnalyzePressure.
func AnalyzePressureWindowed(bars []model.Bar, book model.OrderBookStats) model.PressureResult {
	var lastRatio float64
	if len(bars) > 0 {
		if last := bars[len(bars)-1]; last.QuoteVolume != 0 {
			lastRatio = last.NetInflow / last.QuoteVolume
		}
	}

	var valueImbalance float64
	if total := book.BidPressure + book.AskPressure; total != 0 {
		valueImbalance = book.BidPressure/total - 0.5
	}

	score := 0.5*book.Imbalance + 0.5*lastRatio

	var (
		dir      model.PressureDirection
		strength float64
		strong   bool
	)
	switch {
	case score > 0.15:
		dir = model.PressureUpward
		strength = math.Min(score*3, 1)
		strong = strength > 0.7
	case score < -0.15:
		dir = model.PressureDownward
		strength = math.Min(-score*3, 1)
		strong = strength > 0.7
	default:
		dir = model.PressureNeutral
		strength = math.Abs(score) * 3
	}

	return model.PressureResult{
		Direction:     dir,
		Strong:        strong,
		Confidence:    strength,
		Imbalance:     book.Imbalance,
		PressureRatio: book.PressureRatio,
		Metrics: model.PressureMetrics{
			AvgInflowRatio:      lastRatio,
			VolumeImbalance:     book.Imbalance,
			ValueImbalance:      valueImbalance,
			NearVolumeImbalance: book.Imbalance,
			Score:               score,
			RecentPriceChange:   meanPriceChange(bars, reversalWindow),
		},
	}
}

// meanPriceChange averages PriceChangePct over the last n bars.
func meanPriceChange(bars []model.Bar, n int) float64 {
	if len(bars) == 0 {
		return 0
	}
	if n > len(bars) {
		n = len(bars)
	}
	var s float64
	for _, b := range bars[len(bars)-n:] {
		s += b.PriceChangePct
	}
	return s / float64(n)
}
