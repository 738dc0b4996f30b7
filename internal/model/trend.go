package model

// Trend classifies the direction of the net-inflow series.
type Trend string

const (
	TrendIncreasing         Trend = "INCREASING"
	TrendSlightlyIncreasing Trend = "SLIGHTLY_INCREASING"
	TrendNeutral            Trend = "NEUTRAL"
	TrendSlightlyDecreasing Trend = "SLIGHTLY_DECREASING"
	TrendDecreasing         Trend = "DECREASING"
	TrendUnknown            Trend = "UNKNOWN"
)

// Stage is the symbolic market-phase label.
type Stage string

const (
	StageTop                Stage = "TOP"
	StageBottom             Stage = "BOTTOM"
	StageUptrend            Stage = "UPTREND"
	StageDowntrend          Stage = "DOWNTREND"
	StageConsolidation      Stage = "CONSOLIDATION"
	StageWeakeningUptrend   Stage = "WEAKENING_UPTREND"
	StageWeakeningDowntrend Stage = "WEAKENING_DOWNTREND"
	StageInsufficientData   Stage = "INSUFFICIENT_DATA"
)

// Direction labels the sign of a regression slope.
type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
)

// TrendMetrics bundles the raw regression and correlation values so
// downstream consumers can inspect what drove the classification.
type TrendMetrics struct {
	PriceTrend           float64   `json:"price_trend"`         // fraction of rising close-to-close steps
	InflowTrend          float64   `json:"inflow_trend"`        // fraction of rising inflow-to-inflow steps
	RecentInflowTrend    float64   `json:"recent_inflow_trend"` // same, over the last 10 inflow values
	Correlation          float64   `json:"correlation"`         // Pearson, close vs net inflow
	PriceVolatility      float64   `json:"price_volatility"`    // stddev of close deltas / mean close
	PriceSlope           float64   `json:"price_slope"`
	PriceTrendStrength   float64   `json:"price_trend_strength"` // |r| of price regression
	PriceTrendDirection  Direction `json:"price_trend_direction"`
	InflowSlope          float64   `json:"inflow_slope"`
	InflowTrendStrength  float64   `json:"inflow_trend_strength"` // |r| of inflow regression
	InflowTrendDirection Direction `json:"inflow_trend_direction"`
}

// TrendResult is the outcome of the trend classification for one market.
type TrendResult struct {
	Trend           Trend        `json:"trend"`
	Confidence      float64      `json:"confidence"` // 0-1
	NetInflowTotal  float64      `json:"net_inflow_total"`
	NetInflowRecent float64      `json:"net_inflow_recent"` // last 10 bars
	Stage           Stage        `json:"stage"`
	Reasons         []string     `json:"reasons,omitempty"`
	Metrics         TrendMetrics `json:"metrics"`
}
