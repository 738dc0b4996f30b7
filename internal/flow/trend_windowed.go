package flow

import (
	"fmt"
	"math"

	"github.com/Alias1177/FundFlow/internal/model"
)

// AnalyzeTrendWindowed is the legacy windowed-heuristic trend variant. It
// splits the window in half and compares inflow sums instead of fitting a
// regression; its stage labels come from coarse price/inflow shares. Kept
// selectable because its outputs differ materially from AnalyzeTrend.
func AnalyzeTrendWindowed(bars []model.Bar) model.TrendResult {
	if len(bars) < minTrendBars {
		return model.TrendResult{
			Trend: model.TrendUnknown,
			Stage: model.StageInsufficientData,
		}
	}

	closes := make([]float64, len(bars))
	inflows := make([]float64, len(bars))
	var positive int
	for i, b := range bars {
		closes[i] = b.Close
		inflows[i] = b.NetInflow
		if b.NetInflow > 0 {
			positive++
		}
	}

	half := len(inflows) / 2
	earlier := sum(inflows[:half])
	recent := sum(inflows[half:])

	dir := model.DirectionDown
	if recent > earlier {
		dir = model.DirectionUp
	}
	var strength float64
	if denom := math.Abs(recent) + math.Abs(earlier); denom > 0 {
		strength = math.Abs(recent-earlier) / denom
	}

	priceUpShare := risingFraction(closes)
	positiveShare := float64(positive) / float64(len(bars))

	stage, conf, reasons := windowedStage(priceUpShare, positiveShare, strength)

	m := model.TrendMetrics{
		PriceTrend:           priceUpShare,
		InflowTrend:          positiveShare,
		RecentInflowTrend:    risingFraction(inflows[len(inflows)-recentWindow:]),
		InflowTrendStrength:  strength,
		InflowTrendDirection: dir,
		PriceTrendDirection:  directionOf(closes[len(closes)-1] - closes[0]),
	}

	return model.TrendResult{
		Trend:           trendFromInflow(dir, strength),
		Confidence:      conf,
		NetInflowTotal:  sum(inflows),
		NetInflowRecent: sum(inflows[len(inflows)-recentWindow:]),
		Stage:           stage,
		Reasons:         reasons,
		Metrics:         m,
	}
}

func windowedStage(priceUpShare, positiveShare, strength float64) (model.Stage, float64, []string) {
	conf := math.Min(0.4+strength, 0.9)
	switch {
	case priceUpShare > 0.6 && positiveShare > 0.5:
		return model.StageUptrend, conf, []string{
			fmt.Sprintf("price up in %.0f%% of bars with net buying in %.0f%%", priceUpShare*100, positiveShare*100),
		}
	case priceUpShare > 0.6:
		return model.StageWeakeningUptrend, conf, []string{
			fmt.Sprintf("price up in %.0f%% of bars but net buying in only %.0f%%", priceUpShare*100, positiveShare*100),
		}
	case priceUpShare < 0.4 && positiveShare < 0.5:
		return model.StageDowntrend, conf, []string{
			fmt.Sprintf("price down in %.0f%% of bars with net selling in %.0f%%", (1-priceUpShare)*100, (1-positiveShare)*100),
		}
	case priceUpShare < 0.4:
		return model.StageWeakeningDowntrend, conf, []string{
			fmt.Sprintf("price falling but net buying persists in %.0f%% of bars", positiveShare*100),
		}
	default:
		return model.StageConsolidation, conf, []string{
			fmt.Sprintf("no directional edge, price up in %.0f%% of bars", priceUpShare*100),
		}
	}
}
