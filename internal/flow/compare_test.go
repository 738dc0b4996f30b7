package flow

import (
	"testing"

	"github.com/Alias1177/FundFlow/internal/model"
)

func TestCompare(t *testing.T) {
	spot := generateTestBars(10, func(i int) model.Bar {
		return model.Bar{Close: 92 + float64(i), Volume: 100, NetInflow: 30}
	})
	futures := generateTestBars(10, func(i int) model.Bar {
		return model.Bar{Close: 91 + float64(i), Volume: 50, NetInflow: 10}
	})

	res := Compare(spot, futures)
	// (101-100)/101 × 100
	almostEqual(t, "PriceDiffPct", res.PriceDiffPct, 100.0/101.0, 1e-9)
	almostEqual(t, "VolumeRatio", res.VolumeRatio, 2, 1e-9)
	almostEqual(t, "NetInflowDiff", res.NetInflowDiff, 200, 1e-9)
}

func TestCompareZeroFuturesVolume(t *testing.T) {
	spot := generateTestBars(5, func(i int) model.Bar {
		return model.Bar{Close: 100, Volume: 200}
	})
	futures := generateTestBars(5, func(i int) model.Bar {
		return model.Bar{Close: 100, Volume: 0}
	})

	res := Compare(spot, futures)
	// The denominator floors at 1 when the futures sum is 0.
	almostEqual(t, "VolumeRatio", res.VolumeRatio, 1000, 1e-9)
}

func TestCompareEmptySide(t *testing.T) {
	bars := generateTestBars(5, func(i int) model.Bar {
		return model.Bar{Close: 100, Volume: 1}
	})

	for _, tc := range []struct {
		name          string
		spot, futures []model.Bar
	}{
		{"empty spot", nil, bars},
		{"empty futures", bars, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res := Compare(tc.spot, tc.futures)
			if res != (model.ComparisonResult{}) {
				t.Errorf("Compare() = %+v, want zero result", res)
			}
		})
	}
}
