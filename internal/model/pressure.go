package model

// PressureDirection is the directional funding-pressure call.
type PressureDirection string

const (
	PressureUpward       PressureDirection = "UPWARD"
	PressureDownward     PressureDirection = "DOWNWARD"
	PressureNeutral      PressureDirection = "NEUTRAL"
	PressureReversalUp   PressureDirection = "POTENTIAL_REVERSAL_UP"
	PressureReversalDown PressureDirection = "POTENTIAL_REVERSAL_DOWN"
)

// PressureMetrics exposes the components of the pressure score.
type PressureMetrics struct {
	AvgInflowRatio  float64 `json:"avg_inflow_ratio"` // mean netInflow/quoteVolume over the window
	VolumeImbalance float64 `json:"volume_imbalance"` // book quantity imbalance
	ValueImbalance  float64 `json:"value_imbalance"`  // bidPressure share minus 0.5
	// NearVolumeImbalance currently mirrors VolumeImbalance; a narrower
	// near-touch metric is not computed by this version.
	NearVolumeImbalance float64 `json:"near_volume_imbalance"`
	Score               float64 `json:"score"`
	RecentPriceChange   float64 `json:"recent_price_change"` // mean change % over the last 5 bars
}

// PressureResult is the directional classification for one market.
// Imbalance always equals the OrderBookStats imbalance passed in.
type PressureResult struct {
	Direction     PressureDirection `json:"direction"`
	Strong        bool              `json:"strong"`
	Confidence    float64           `json:"confidence"` // 0-1, pre-override strength
	Imbalance     float64           `json:"imbalance"`
	PressureRatio float64           `json:"pressure_ratio"`
	Metrics       PressureMetrics   `json:"metrics"`
}
