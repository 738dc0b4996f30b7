package flow

import (
	"testing"

	"github.com/Alias1177/FundFlow/internal/model"
)

func TestDetectAnomaliesInsufficientData(t *testing.T) {
	bars := generateTestBars(4, func(i int) model.Bar {
		return model.Bar{Open: 100, Close: 100, Volume: 1000, QuoteVolume: 100000}
	})

	for _, mode := range []AnomalyMode{AnomalyModeRatio, AnomalyModeRaw} {
		rep := DetectAnomalies(bars, mode)
		if rep.HasAnomalies {
			t.Errorf("mode %s: HasAnomalies = true, want false", mode)
		}
		if len(rep.Records) != 0 {
			t.Errorf("mode %s: len(Records) = %d, want 0", mode, len(rep.Records))
		}
	}
}

func TestDetectAnomaliesConstantSeries(t *testing.T) {
	// Constant volume and price: σ=0 on both distributions, nothing exceeds
	// a threshold.
	bars := generateTestBars(20, func(i int) model.Bar {
		return model.Bar{Open: 100, Close: 100, Volume: 1000, QuoteVolume: 100000}
	})

	rep := DetectAnomalies(bars, AnomalyModeRatio)
	if rep.HasAnomalies {
		t.Errorf("HasAnomalies = true, want false; records: %v", rep.Records)
	}
}

func TestDetectAnomaliesHighVolumeLowPriceChange(t *testing.T) {
	// One bar with 5x the usual quote volume but a below-average move.
	bars := generateTestBars(10, func(i int) model.Bar {
		b := model.Bar{Open: 100, Close: 100.2, QuoteVolume: 1000, NetInflow: 10}
		if i == 6 {
			b.Close = 100.05
			b.QuoteVolume = 5000
		}
		return b
	})

	rep := DetectAnomalies(bars, AnomalyModeRatio)
	if !rep.HasAnomalies || len(rep.Records) != 1 {
		t.Fatalf("Records = %v, want exactly one", rep.Records)
	}

	rec := rep.Records[0]
	if rec.Kind != model.AnomalyHighVolumeLowPriceChange {
		t.Errorf("Kind = %v, want %v", rec.Kind, model.AnomalyHighVolumeLowPriceChange)
	}
	if rec.Side != model.DeviationHigh {
		t.Errorf("Side = %v, want %v", rec.Side, model.DeviationHigh)
	}
	almostEqual(t, "Value", rec.Value, 5000, 1e-9)
	// mean 1400, stddev 1200 over the window.
	almostEqual(t, "Deviation", rec.Deviation, 3, 1e-9)
	if !rec.Time.Equal(bars[6].CloseTime) {
		t.Errorf("Time = %v, want %v", rec.Time, bars[6].CloseTime)
	}
}

func TestDetectAnomaliesExtremeInflow(t *testing.T) {
	tests := []struct {
		name      string
		inflow    float64
		kind      model.AnomalyKind
		deviation float64
		side      model.DeviationSide
	}{
		{"extreme inflow", 800, model.AnomalyExtremeNetInflow, 2, model.DeviationHigh},
		{"extreme outflow", -800, model.AnomalyExtremeNetOutflow, -2, model.DeviationLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars := generateTestBars(8, func(i int) model.Bar {
				b := model.Bar{Open: 100, Close: 100, QuoteVolume: 1000}
				if i == 3 {
					b.NetInflow = tt.inflow
				}
				return b
			})

			rep := DetectAnomalies(bars, AnomalyModeRatio)
			if len(rep.Records) != 1 {
				t.Fatalf("Records = %v, want exactly one", rep.Records)
			}
			rec := rep.Records[0]
			if rec.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", rec.Kind, tt.kind)
			}
			almostEqual(t, "Deviation", rec.Deviation, tt.deviation, 1e-12)
			if rec.Side != tt.side {
				t.Errorf("Side = %v, want %v", rec.Side, tt.side)
			}
		})
	}
}

func TestDetectAnomaliesBelowExtremeThreshold(t *testing.T) {
	// Inflow at exactly 70% of quote volume does not qualify.
	bars := generateTestBars(8, func(i int) model.Bar {
		b := model.Bar{Open: 100, Close: 100, QuoteVolume: 1000}
		if i == 3 {
			b.NetInflow = 700
		}
		return b
	})

	rep := DetectAnomalies(bars, AnomalyModeRatio)
	if rep.HasAnomalies {
		t.Errorf("HasAnomalies = true, want false; records: %v", rep.Records)
	}
}

func TestDetectAnomaliesRawVolumeSpike(t *testing.T) {
	bars := generateTestBars(10, func(i int) model.Bar {
		b := model.Bar{Open: 100, Close: 100, Volume: 1000}
		if i == 4 {
			b.Volume = 5000
		}
		return b
	})

	rep := DetectAnomalies(bars, AnomalyModeRaw)
	if len(rep.Records) != 1 {
		t.Fatalf("Records = %v, want exactly one", rep.Records)
	}
	rec := rep.Records[0]
	if rec.Kind != model.AnomalyVolumeSpike {
		t.Errorf("Kind = %v, want %v", rec.Kind, model.AnomalyVolumeSpike)
	}
	almostEqual(t, "Deviation", rec.Deviation, 3, 1e-9)
	if rec.Side != model.DeviationHigh {
		t.Errorf("Side = %v, want %v", rec.Side, model.DeviationHigh)
	}
}

func TestDetectAnomaliesRawTruncation(t *testing.T) {
	// Seven mismatch bars (sharp move on below-average volume); only the 5
	// most recent survive.
	bars := generateTestBars(12, func(i int) model.Bar {
		if i < 5 {
			return model.Bar{Open: 100, Close: 100, Volume: 2000}
		}
		return model.Bar{Open: 100, Close: 102, Volume: 500, PriceChangePct: 2}
	})

	rep := DetectAnomalies(bars, AnomalyModeRaw)
	if len(rep.Records) != 5 {
		t.Fatalf("len(Records) = %d, want 5", len(rep.Records))
	}
	for _, rec := range rep.Records {
		if rec.Kind != model.AnomalyPriceVolumeMismatch {
			t.Errorf("Kind = %v, want %v", rec.Kind, model.AnomalyPriceVolumeMismatch)
		}
	}
	// The first surviving record belongs to bar 7 of 12.
	if !rep.Records[0].Time.Equal(bars[7].CloseTime) {
		t.Errorf("first record time = %v, want %v", rep.Records[0].Time, bars[7].CloseTime)
	}
}
