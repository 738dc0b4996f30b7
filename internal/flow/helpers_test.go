package flow

import (
	"math"
	"testing"
	"time"

	"github.com/Alias1177/FundFlow/internal/model"
)

var testBase = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// generateTestBars builds n bars one minute apart from a per-index template.
func generateTestBars(n int, generator func(i int) model.Bar) []model.Bar {
	bars := make([]model.Bar, n)
	for i := 0; i < n; i++ {
		b := generator(i)
		b.OpenTime = testBase.Add(time.Duration(i) * time.Minute)
		b.CloseTime = b.OpenTime.Add(time.Minute)
		bars[i] = b
	}
	return bars
}

func almostEqual(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, eps)
	}
}
