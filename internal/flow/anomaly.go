package flow

import (
	"math"

	"github.com/Alias1177/FundFlow/internal/model"
)

const (
	minAnomalyBars = 5

	// Share of quote volume a bar's net inflow must exceed to count as
	// extreme in ratio mode.
	extremeInflowShare = 0.7

	// Fixed deviation indicator for the inflow-ratio kinds; no
	// distributional stddev is tracked for the inflow ratio.
	inflowDeviation = 2.0

	// Raw mode keeps only the most recent findings.
	rawModeLimit = 5
)

// AnomalyMode selects which detector formulation runs. The two modes score
// different inputs and disagree on severity semantics, so the choice is
// explicit rather than silent.
type AnomalyMode string

const (
	// AnomalyModeRatio scores quote volume and relative price change
	// against the window distribution and flags extreme inflow ratios.
	// This is the primary mode.
	AnomalyModeRatio AnomalyMode = "ratio"
	// AnomalyModeRaw is the legacy mode: z-scores over raw volume and net
	// inflow plus a price/volume mismatch check, truncated to the 5 most
	// recent records.
	AnomalyModeRaw AnomalyMode = "raw"
)

// DetectAnomalies scans the window for statistical outliers. Fewer than 5
// bars yields an empty report, not an error.
func DetectAnomalies(bars []model.Bar, mode AnomalyMode) model.AnomalyReport {
	if len(bars) < minAnomalyBars {
		return model.AnomalyReport{}
	}
	if mode == AnomalyModeRaw {
		return detectRawAnomalies(bars)
	}
	return detectRatioAnomalies(bars)
}

func detectRatioAnomalies(bars []model.Bar) model.AnomalyReport {
	quoteVols := make([]float64, len(bars))
	changeFracs := make([]float64, len(bars))
	for i, b := range bars {
		quoteVols[i] = b.QuoteVolume
		changeFracs[i] = math.Abs(b.Close-b.Open) / b.Open
	}

	vMean, vStd := mean(quoteVols), stdDevPop(quoteVols)
	cMean, cStd := mean(changeFracs), stdDevPop(changeFracs)

	var records []model.AnomalyRecord
	for i, b := range bars {
		frac := changeFracs[i]

		// Heavy turnover without a matching price move.
		if b.QuoteVolume > vMean+2*vStd && frac < cMean+0.5*cStd {
			records = append(records, model.AnomalyRecord{
				Time:      b.CloseTime,
				Kind:      model.AnomalyHighVolumeLowPriceChange,
				Value:     b.QuoteVolume,
				Deviation: zScore(b.QuoteVolume, vMean, vStd),
				Side:      model.DeviationHigh,
			})
		}

		// Sharp move on thin turnover.
		if frac > cMean+2*cStd && b.QuoteVolume < vMean+0.5*vStd {
			records = append(records, model.AnomalyRecord{
				Time:      b.CloseTime,
				Kind:      model.AnomalyHighPriceChangeLowVolume,
				Value:     frac,
				Deviation: zScore(frac, cMean, cStd),
				Side:      model.DeviationHigh,
			})
		}

		if b.NetInflow > 0 && b.NetInflow > extremeInflowShare*b.QuoteVolume {
			records = append(records, model.AnomalyRecord{
				Time:      b.CloseTime,
				Kind:      model.AnomalyExtremeNetInflow,
				Value:     b.NetInflow,
				Deviation: inflowDeviation,
				Side:      model.DeviationHigh,
			})
		}
		if b.NetInflow < 0 && -b.NetInflow > extremeInflowShare*b.QuoteVolume {
			records = append(records, model.AnomalyRecord{
				Time:      b.CloseTime,
				Kind:      model.AnomalyExtremeNetOutflow,
				Value:     b.NetInflow,
				Deviation: -inflowDeviation,
				Side:      model.DeviationLow,
			})
		}
	}

	return model.AnomalyReport{
		HasAnomalies: len(records) > 0,
		Records:      records,
	}
}

func detectRawAnomalies(bars []model.Bar) model.AnomalyReport {
	vols := make([]float64, len(bars))
	inflows := make([]float64, len(bars))
	for i, b := range bars {
		vols[i] = b.Volume
		inflows[i] = b.NetInflow
	}

	vMean, vStd := mean(vols), stdDevPop(vols)
	iMean, iStd := mean(inflows), stdDevPop(inflows)

	var records []model.AnomalyRecord
	for i, b := range bars {
		vz := zScore(vols[i], vMean, vStd)
		iz := zScore(inflows[i], iMean, iStd)

		if vz > 2 || vz < -2 {
			records = append(records, model.AnomalyRecord{
				Time:      b.CloseTime,
				Kind:      model.AnomalyVolumeSpike,
				Value:     b.Volume,
				Deviation: vz,
				Side:      sideOf(vz),
			})
		}
		if iz > 2 || iz < -2 {
			records = append(records, model.AnomalyRecord{
				Time:      b.CloseTime,
				Kind:      model.AnomalyNetInflowSpike,
				Value:     b.NetInflow,
				Deviation: iz,
				Side:      sideOf(iz),
			})
		}
		// Price moved more than 1% on below-average volume.
		if math.Abs(b.PriceChangePct) > 1 && vz < 0 {
			records = append(records, model.AnomalyRecord{
				Time:      b.CloseTime,
				Kind:      model.AnomalyPriceVolumeMismatch,
				Value:     b.PriceChangePct,
				Deviation: vz,
				Side:      sideOf(b.PriceChangePct),
			})
		}
	}

	if len(records) > rawModeLimit {
		records = records[len(records)-rawModeLimit:]
	}
	return model.AnomalyReport{
		HasAnomalies: len(records) > 0,
		Records:      records,
	}
}

func sideOf(v float64) model.DeviationSide {
	if v >= 0 {
		return model.DeviationHigh
	}
	return model.DeviationLow
}
