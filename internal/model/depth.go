package model

// PriceLevel is a single order-book level.
type PriceLevel struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// OrderBookStats aggregates one depth snapshot. Derived once per
// (symbol, market) per run and never mutated afterwards.
type OrderBookStats struct {
	BidQuantity   float64 `json:"bid_quantity"`
	AskQuantity   float64 `json:"ask_quantity"`
	Imbalance     float64 `json:"imbalance"`      // (bid-ask)/(bid+ask), in [-1,1]
	BidPressure   float64 `json:"bid_pressure"`   // Σ price×qty over bids
	AskPressure   float64 `json:"ask_pressure"`   // Σ price×qty over asks
	PressureRatio float64 `json:"pressure_ratio"` // bid/ask pressure, +Inf when ask pressure is 0
	BestBid       float64 `json:"best_bid"`
	BestAsk       float64 `json:"best_ask"`
	Spread        float64 `json:"spread"`
	SpreadPct     float64 `json:"spread_pct"`
}
