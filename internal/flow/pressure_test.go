package flow

import (
	"math"
	"testing"

	"github.com/Alias1177/FundFlow/internal/model"
)

func TestAnalyzePressureImbalancePassthrough(t *testing.T) {
	bars := generateTestBars(12, func(i int) model.Bar {
		return model.Bar{Close: 100, NetInflow: 5, QuoteVolume: 1000}
	})
	book := model.OrderBookStats{
		Imbalance:     0.123456789,
		BidPressure:   150,
		AskPressure:   120,
		PressureRatio: 1.25,
	}

	res := AnalyzePressure(bars, book)
	if res.Imbalance != book.Imbalance {
		t.Errorf("Imbalance = %v, want bit-identical %v", res.Imbalance, book.Imbalance)
	}
	if res.PressureRatio != book.PressureRatio {
		t.Errorf("PressureRatio = %v, want %v", res.PressureRatio, book.PressureRatio)
	}
	if res.Metrics.NearVolumeImbalance != res.Metrics.VolumeImbalance {
		t.Errorf("NearVolumeImbalance = %v, want equal to VolumeImbalance %v",
			res.Metrics.NearVolumeImbalance, res.Metrics.VolumeImbalance)
	}
}

func TestAnalyzePressureStrongUpward(t *testing.T) {
	bars := generateTestBars(15, func(i int) model.Bar {
		return model.Bar{Close: 100, NetInflow: 500, QuoteVolume: 1000}
	})
	book := model.OrderBookStats{
		Imbalance:   0.5,
		BidPressure: 300,
		AskPressure: 100,
	}

	res := AnalyzePressure(bars, book)
	if res.Direction != model.PressureUpward {
		t.Errorf("Direction = %v, want %v", res.Direction, model.PressureUpward)
	}
	if !res.Strong {
		t.Error("Strong = false, want true")
	}
	// 0.4×0.5 + 0.2×0.5 + 0.2×0.25 + 0.2×0.5 = 0.45, strength capped at 1.
	almostEqual(t, "Score", res.Metrics.Score, 0.45, 1e-9)
	almostEqual(t, "Confidence", res.Confidence, 1, 1e-9)
	almostEqual(t, "AvgInflowRatio", res.Metrics.AvgInflowRatio, 0.5, 1e-9)
}

func TestAnalyzePressureNeutral(t *testing.T) {
	bars := generateTestBars(12, func(i int) model.Bar {
		return model.Bar{Close: 100, QuoteVolume: 1000}
	})

	res := AnalyzePressure(bars, model.OrderBookStats{})
	if res.Direction != model.PressureNeutral {
		t.Errorf("Direction = %v, want %v", res.Direction, model.PressureNeutral)
	}
	almostEqual(t, "Confidence", res.Confidence, 0, 1e-12)
	if res.Strong {
		t.Error("Strong = true, want false")
	}
}

func TestAnalyzePressureReversalOverride(t *testing.T) {
	tests := []struct {
		name      string
		changePct float64
		imbalance float64
		baseDir   model.PressureDirection
		override  model.PressureDirection
	}{
		{"reversal up", -2, 0.3, model.PressureUpward, model.PressureReversalUp},
		{"reversal down", 2, -0.3, model.PressureDownward, model.PressureReversalDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars := generateTestBars(12, func(i int) model.Bar {
				return model.Bar{Close: 100, QuoteVolume: 1000, PriceChangePct: tt.changePct}
			})
			book := model.OrderBookStats{
				Imbalance:   tt.imbalance,
				BidPressure: 100,
				AskPressure: 100,
			}

			res := AnalyzePressure(bars, book)
			if res.Direction != tt.override {
				t.Errorf("Direction = %v, want %v", res.Direction, tt.override)
			}
			// score = 0.2×imb + 0.2×imb → |0.12|, strength 0.6 retained.
			almostEqual(t, "Confidence", res.Confidence, 0.6, 1e-9)
		})
	}
}

func TestAnalyzePressureNoBars(t *testing.T) {
	// The caller contract forbids empty input, but the math stays guarded.
	res := AnalyzePressure(nil, model.OrderBookStats{Imbalance: 0.05})
	if res.Direction != model.PressureNeutral {
		t.Errorf("Direction = %v, want %v", res.Direction, model.PressureNeutral)
	}
	if math.IsNaN(res.Confidence) || math.IsNaN(res.Metrics.Score) {
		t.Error("NaN leaked out of empty-input pressure analysis")
	}
}

func TestAnalyzePressureWindowed(t *testing.T) {
	bars := generateTestBars(12, func(i int) model.Bar {
		return model.Bar{Close: 100, NetInflow: 400, QuoteVolume: 1000}
	})
	book := model.OrderBookStats{Imbalance: 0.4, BidPressure: 100, AskPressure: 100, PressureRatio: 1}

	res := AnalyzePressureWindowed(bars, book)
	if res.Direction != model.PressureUpward {
		t.Errorf("Direction = %v, want %v", res.Direction, model.PressureUpward)
	}
	if !res.Strong {
		t.Error("Strong = false, want true")
	}
	// score = 0.5×0.4 + 0.5×0.4 = 0.4, strength min(1.2, 1).
	almostEqual(t, "Score", res.Metrics.Score, 0.4, 1e-9)
	almostEqual(t, "Confidence", res.Confidence, 1, 1e-9)
	if res.Imbalance != book.Imbalance {
		t.Errorf("Imbalance = %v, want %v", res.Imbalance, book.Imbalance)
	}
}
