package flow

import (
	"testing"

	"github.com/Alias1177/FundFlow/internal/model"
)

func TestNewAnalyzerVariantFallback(t *testing.T) {
	tests := []struct {
		name     string
		variant  Variant
		expected Variant
	}{
		{"regression", VariantRegression, VariantRegression},
		{"windowed", VariantWindowed, VariantWindowed},
		{"unknown falls back", Variant("fancy"), VariantRegression},
		{"empty falls back", Variant(""), VariantRegression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.variant).Variant(); got != tt.expected {
				t.Errorf("Variant() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAnalyzerDispatch(t *testing.T) {
	// The two families must actually disagree on the same input so a
	// silent merge would be caught.
	bars := generateTestBars(12, func(i int) model.Bar {
		b := model.Bar{Open: 100, Close: 100, Volume: 1000, QuoteVolume: 100000}
		if i == 6 {
			b.Volume = 5000
			b.QuoteVolume = 500000
		}
		return b
	})

	regression := New(VariantRegression).Anomalies(bars)
	windowed := New(VariantWindowed).Anomalies(bars)

	// The flat window gives the ratio mode no price-change confirmation,
	// while the raw mode still flags the volume z-score.
	if len(windowed.Records) == 0 {
		t.Fatal("raw mode found no records, fixture is too weak")
	}
	if len(regression.Records) == len(windowed.Records) {
		t.Error("variants agree on the divergence fixture; dispatch may be broken")
	}
}
