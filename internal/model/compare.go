package model

// ComparisonResult holds cross-market diffs between the spot and futures
// series of one symbol.
type ComparisonResult struct {
	PriceDiffPct  float64 `json:"price_diff_pct"` // (spot-futures)/spot, percent
	VolumeRatio   float64 `json:"volume_ratio"`   // Σspot volume / Σfutures volume
	NetInflowDiff float64 `json:"net_inflow_diff"`
}
