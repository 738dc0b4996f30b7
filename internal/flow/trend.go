package flow

import (
	"fmt"
	"math"

	"github.com/Alias1177/FundFlow/internal/model"
)

const (
	minTrendBars = 10
	recentWindow = 10
)

// stageRule pairs a predicate over the computed metrics with the outcome it
// produces. Rules are evaluated in fixed priority order, first match wins;
// new stages slot into the table without touching control flow.
type stageRule struct {
	stage   model.Stage
	match   func(m model.TrendMetrics) bool
	outcome func(m model.TrendMetrics) (confidence float64, reasons []string)
}

var stageRules = []stageRule{
	{
		stage: model.StageTop,
		match: func(m model.TrendMetrics) bool {
			return m.PriceTrend > 0.7 && m.InflowTrend < 0.3 && m.Correlation < -0.3
		},
		outcome: func(m model.TrendMetrics) (float64, []string) {
			conf := math.Min(0.7+m.PriceTrend-m.InflowTrend-m.Correlation, 0.95)
			return conf, []string{
				fmt.Sprintf("price rising in %.0f%% of bars while inflow weakens", m.PriceTrend*100),
				fmt.Sprintf("price and inflow diverging, correlation %.2f", m.Correlation),
			}
		},
	},
	{
		stage: model.StageBottom,
		match: func(m model.TrendMetrics) bool {
			return m.PriceTrend < 0.3 && m.InflowTrend > 0.7 && m.Correlation < -0.3
		},
		outcome: func(m model.TrendMetrics) (float64, []string) {
			conf := math.Min(0.7-m.PriceTrend+m.InflowTrend-m.Correlation, 0.95)
			return conf, []string{
				fmt.Sprintf("inflow rising in %.0f%% of bars while price falls", m.InflowTrend*100),
				fmt.Sprintf("accumulation against price, correlation %.2f", m.Correlation),
			}
		},
	},
	{
		stage: model.StageUptrend,
		match: func(m model.TrendMetrics) bool {
			return m.PriceTrend > 0.6 && m.InflowTrend > 0.6 && m.Correlation > 0.3
		},
		outcome: func(m model.TrendMetrics) (float64, []string) {
			conf := math.Min(m.PriceTrend+m.InflowTrend+m.Correlation-1.0, 0.95)
			return conf, []string{
				fmt.Sprintf("price and inflow rising together, correlation %.2f", m.Correlation),
				fmt.Sprintf("price up in %.0f%%, inflow up in %.0f%% of bars", m.PriceTrend*100, m.InflowTrend*100),
			}
		},
	},
	{
		stage: model.StageDowntrend,
		match: func(m model.TrendMetrics) bool {
			return m.PriceTrend < 0.4 && m.InflowTrend < 0.4 && m.Correlation > 0.3
		},
		outcome: func(m model.TrendMetrics) (float64, []string) {
			conf := math.Min(1.0-m.PriceTrend-m.InflowTrend+m.Correlation, 0.95)
			return conf, []string{
				fmt.Sprintf("price and inflow falling together, correlation %.2f", m.Correlation),
				fmt.Sprintf("outflow dominates, inflow up in only %.0f%% of bars", m.InflowTrend*100),
			}
		},
	},
	{
		stage: model.StageConsolidation,
		match: func(m model.TrendMetrics) bool {
			return math.Abs(m.PriceTrend-0.5) < 0.15 && m.PriceVolatility < 0.01
		},
		outcome: func(m model.TrendMetrics) (float64, []string) {
			conf := 0.5 + (0.15-math.Abs(m.PriceTrend-0.5))*3
			return conf, []string{
				fmt.Sprintf("directionless price action, volatility %.4f", m.PriceVolatility),
			}
		},
	},
}

// classifyStage walks the rule table and falls back to the price/inflow
// quadrant heuristic when nothing matches.
func classifyStage(m model.TrendMetrics) (model.Stage, float64, []string) {
	for _, rule := range stageRules {
		if rule.match(m) {
			conf, reasons := rule.outcome(m)
			return rule.stage, conf, reasons
		}
	}
	return fallbackStage(m)
}

func fallbackStage(m model.TrendMetrics) (model.Stage, float64, []string) {
	if m.PriceTrend > 0.5 {
		if m.InflowTrend > 0.5 {
			conf := (m.PriceTrend + m.InflowTrend) / 2
			return model.StageUptrend, conf, []string{
				fmt.Sprintf("price and inflow both leaning up (%.0f%% / %.0f%%)", m.PriceTrend*100, m.InflowTrend*100),
			}
		}
		conf := m.PriceTrend * (1 - m.InflowTrend)
		return model.StageWeakeningUptrend, conf, []string{
			fmt.Sprintf("price still rising but inflow fading, up in only %.0f%% of bars", m.InflowTrend*100),
		}
	}
	if m.InflowTrend < 0.5 {
		conf := (1 - m.PriceTrend + 1 - m.InflowTrend) / 2
		return model.StageDowntrend, conf, []string{
			fmt.Sprintf("price and inflow both leaning down (%.0f%% / %.0f%%)", m.PriceTrend*100, m.InflowTrend*100),
		}
	}
	conf := (1 - m.PriceTrend) * m.InflowTrend
	return model.StageWeakeningDowntrend, conf, []string{
		fmt.Sprintf("price falling but inflow recovering, up in %.0f%% of bars", m.InflowTrend*100),
	}
}

// AnalyzeTrend classifies the funding-flow trend and market stage using the
// regression/ratio-based variant. It needs at least 10 bars; smaller windows
// return the Unknown/InsufficientData sentinel instead of an error.
func AnalyzeTrend(bars []model.Bar) model.TrendResult {
	if len(bars) < minTrendBars {
		return model.TrendResult{
			Trend: model.TrendUnknown,
			Stage: model.StageInsufficientData,
		}
	}

	closes := make([]float64, len(bars))
	inflows := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		inflows[i] = b.NetInflow
	}

	m := model.TrendMetrics{
		PriceTrend:        risingFraction(closes),
		InflowTrend:       risingFraction(inflows),
		RecentInflowTrend: risingFraction(inflows[len(inflows)-recentWindow:]),
		Correlation:       pearson(closes, inflows),
	}

	if mc := mean(closes); mc != 0 {
		m.PriceVolatility = stdDevPop(deltas(closes)) / mc
	}

	var r float64
	m.PriceSlope, _, r = linearRegression(closes)
	m.PriceTrendStrength = math.Abs(r)
	m.PriceTrendDirection = directionOf(m.PriceSlope)

	m.InflowSlope, _, r = linearRegression(inflows)
	m.InflowTrendStrength = math.Abs(r)
	m.InflowTrendDirection = directionOf(m.InflowSlope)

	stage, conf, reasons := classifyStage(m)

	return model.TrendResult{
		Trend:           trendFromInflow(m.InflowTrendDirection, m.InflowTrendStrength),
		Confidence:      conf,
		NetInflowTotal:  sum(inflows),
		NetInflowRecent: sum(inflows[len(inflows)-recentWindow:]),
		Stage:           stage,
		Reasons:         reasons,
		Metrics:         m,
	}
}

func directionOf(slope float64) model.Direction {
	if slope > 0 {
		return model.DirectionUp
	}
	return model.DirectionDown
}

// trendFromInflow maps the inflow regression onto the trend enum.
func trendFromInflow(dir model.Direction, strength float64) model.Trend {
	switch {
	case dir == model.DirectionUp && strength > 0.5:
		return model.TrendIncreasing
	case dir == model.DirectionUp && strength > 0.3:
		return model.TrendSlightlyIncreasing
	case dir == model.DirectionDown && strength > 0.5:
		return model.TrendDecreasing
	case dir == model.DirectionDown && strength > 0.3:
		return model.TrendSlightlyDecreasing
	default:
		return model.TrendNeutral
	}
}
