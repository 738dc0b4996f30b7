package model

import "time"

// AnomalyKind names one statistical irregularity in a bar.
type AnomalyKind string

const (
	AnomalyHighVolumeLowPriceChange AnomalyKind = "HIGH_VOLUME_LOW_PRICE_CHANGE"
	AnomalyHighPriceChangeLowVolume AnomalyKind = "HIGH_PRICE_CHANGE_LOW_VOLUME"
	AnomalyExtremeNetInflow         AnomalyKind = "EXTREME_NET_INFLOW"
	AnomalyExtremeNetOutflow        AnomalyKind = "EXTREME_NET_OUTFLOW"

	// Raw-mode kinds.
	AnomalyVolumeSpike         AnomalyKind = "VOLUME_SPIKE"
	AnomalyNetInflowSpike      AnomalyKind = "NET_INFLOW_SPIKE"
	AnomalyPriceVolumeMismatch AnomalyKind = "PRICE_VOLUME_MISMATCH"
)

// DeviationSide tells which tail of the distribution the observation fell in.
type DeviationSide string

const (
	DeviationHigh DeviationSide = "HIGH"
	DeviationLow  DeviationSide = "LOW"
)

// AnomalyRecord is a single finding. A bar may contribute zero, one or
// several records. Deviation is a z-score where a distribution is tracked,
// or a fixed ±2.0 indicator for the inflow-ratio kinds.
type AnomalyRecord struct {
	Time      time.Time     `json:"time"`
	Kind      AnomalyKind   `json:"kind"`
	Value     float64       `json:"value"`
	Deviation float64       `json:"deviation"`
	Side      DeviationSide `json:"side"`
}

// AnomalyReport lists the findings for one market, in bar order.
type AnomalyReport struct {
	HasAnomalies bool            `json:"has_anomalies"`
	Records      []AnomalyRecord `json:"records,omitempty"`
}
