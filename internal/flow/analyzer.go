package flow

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/FundFlow/internal/model"
)

// Variant selects which of the two algorithm families drives trend, anomaly
// and pressure analysis. The families disagree on inputs and severity
// semantics, so they are never mixed implicitly.
type Variant string

const (
	// VariantRegression is the regression/ratio-based family (primary).
	VariantRegression Variant = "regression"
	// VariantWindowed is the simpler windowed-heuristic family.
	VariantWindowed Variant = "windowed"
)

// Analyzer runs the analysis suite for one (symbol, market) series. It is
// stateless and safe for concurrent use across markets.
type Analyzer struct {
	variant Variant
	logger  zerolog.Logger
}

// New builds an Analyzer; unrecognized variants fall back to regression.
func New(variant Variant) *Analyzer {
	if variant != VariantWindowed {
		variant = VariantRegression
	}
	return &Analyzer{
		variant: variant,
		logger: log.With().
			Str("component", "flow").
			Str("variant", string(variant)).
			Logger(),
	}
}

// Variant reports the selected algorithm family.
func (a *Analyzer) Variant() Variant {
	return a.variant
}

// Trend classifies the funding-flow trend and market stage.
func (a *Analyzer) Trend(bars []model.Bar) model.TrendResult {
	var res model.TrendResult
	if a.variant == VariantWindowed {
		res = AnalyzeTrendWindowed(bars)
	} else {
		res = AnalyzeTrend(bars)
	}
	a.logger.Debug().
		Int("bars", len(bars)).
		Str("stage", string(res.Stage)).
		Float64("confidence", res.Confidence).
		Msg("Trend classified")
	return res
}

// Anomalies scans the window for statistical outliers.
func (a *Analyzer) Anomalies(bars []model.Bar) model.AnomalyReport {
	mode := AnomalyModeRatio
	if a.variant == VariantWindowed {
		mode = AnomalyModeRaw
	}
	rep := DetectAnomalies(bars, mode)
	a.logger.Debug().
		Int("bars", len(bars)).
		Int("records", len(rep.Records)).
		Msg("Anomaly scan done")
	return rep
}

// Pressure derives the directional funding-pressure call.
func (a *Analyzer) Pressure(bars []model.Bar, book model.OrderBookStats) model.PressureResult {
	var res model.PressureResult
	if a.variant == VariantWindowed {
		res = AnalyzePressureWindowed(bars, book)
	} else {
		res = AnalyzePressure(bars, book)
	}
	a.logger.Debug().
		Str("direction", string(res.Direction)).
		Float64("score", res.Metrics.Score).
		Msg("Pressure analyzed")
	return res
}
