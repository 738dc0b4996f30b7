package flow

import "github.com/Alias1177/FundFlow/internal/model"

// Compare computes the cross-market diffs between the spot and futures bar
// series of one symbol. Either side empty yields a zero result.
func Compare(spot, futures []model.Bar) model.ComparisonResult {
	if len(spot) == 0 || len(futures) == 0 {
		return model.ComparisonResult{}
	}

	spotClose := spot[len(spot)-1].Close
	futuresClose := futures[len(futures)-1].Close

	var priceDiffPct float64
	if spotClose != 0 {
		priceDiffPct = (spotClose - futuresClose) / spotClose * 100
	}

	var spotVolume, futuresVolume, spotInflow, futuresInflow float64
	for _, b := range spot {
		spotVolume += b.Volume
		spotInflow += b.NetInflow
	}
	for _, b := range futures {
		futuresVolume += b.Volume
		futuresInflow += b.NetInflow
	}

	denom := futuresVolume
	if denom == 0 {
		denom = 1
	}

	return model.ComparisonResult{
		PriceDiffPct:  priceDiffPct,
		VolumeRatio:   spotVolume / denom,
		NetInflowDiff: spotInflow - futuresInflow,
	}
}
