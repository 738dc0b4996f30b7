package model

import "time"

// MarketKind identifies which market a bar series was sampled from.
type MarketKind string

const (
	MarketSpot    MarketKind = "spot"
	MarketFutures MarketKind = "futures"
)

// RawBar is a single kline row as returned by the exchange, before enrichment.
// The final row of a fetch is the still-forming candle and is dropped during
// normalization.
type RawBar struct {
	OpenTime    time.Time `json:"open_time"`
	CloseTime   time.Time `json:"close_time"`
	Open        float64   `json:"open"`
	High        float64   `json:"high"`
	Low         float64   `json:"low"`
	Close       float64   `json:"close"`
	Volume      float64   `json:"volume"`       // base units
	QuoteVolume float64   `json:"quote_volume"` // quote-currency units
}

// Bar is one completed candle enriched with the heuristic buy/sell split.
// BuyVolume+SellVolume always equals Volume; NetInflow is signed and in
// quote-currency units.
type Bar struct {
	OpenTime       time.Time `json:"open_time"`
	CloseTime      time.Time `json:"close_time"`
	Open           float64   `json:"open"`
	High           float64   `json:"high"`
	Low            float64   `json:"low"`
	Close          float64   `json:"close"`
	Volume         float64   `json:"volume"`
	QuoteVolume    float64   `json:"quote_volume"`
	BuyVolume      float64   `json:"buy_volume"`
	SellVolume     float64   `json:"sell_volume"`
	NetInflow      float64   `json:"net_inflow"`
	PriceChangePct float64   `json:"price_change_pct"`
}
