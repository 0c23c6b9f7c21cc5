package indicator

import (
	"time"

	"github.com/volumeflow/cvd/pkg/types"
)

/*
DeltaEstimator approximates the net buy-sell volume of one bar.

The bar is decomposed into the bars of an equal-or-finer interval whose
start times fall within the bar's half-open time span, and each finer bar's
volume is split by where its close sits inside the high-low range:

	closePos = (close - low) / (high - low)
	delta   += volume*closePos - volume*(1-closePos)

This is an OHLCV approximation, not trade-by-trade classification.
*/
type DeltaEstimator struct {
	Source       BarSource
	Native       types.Interval
	Effective    types.Interval
	VolumeSource VolumeSource

	// Now bounds the span of the in-progress bar. Defaults to time.Now.
	Now func() time.Time
}

func (e *DeltaEstimator) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}

	return time.Now()
}

// Estimate returns the signed delta volume of the native-interval bar at
// index i (0 = most recent). Missing finer-interval data degrades to 0
// rather than failing the computation pass.
func (e *DeltaEstimator) Estimate(i int) float64 {
	k, ok := e.Source.Bar(e.Native, i)
	if !ok {
		return 0.0
	}

	spanStart := k.StartTime
	spanEnd := e.now()
	if i > 0 {
		if next, ok := e.Source.Bar(e.Native, i-1); ok {
			spanEnd = next.StartTime
		}
	}

	// the chronologically earliest finer bar covered by this span; when the
	// finer history predates the span entirely there is nothing to sum
	j, ok := e.Source.IndexAtOrAfter(e.Effective, spanStart)
	if !ok {
		return 0.0
	}

	var delta = 0.0
	for ; j >= 0; j-- {
		lower, ok := e.Source.Bar(e.Effective, j)
		if !ok {
			break
		}

		// the span is half-open: [spanStart, spanEnd)
		if !lower.StartTime.Before(spanEnd) {
			break
		}

		delta += closePositionDelta(lower, e.VolumeSource)
	}

	return delta
}

// closePositionDelta returns buy - sell for a single bar. A zero-range bar
// carries no direction information and contributes 0.
func closePositionDelta(k types.KLine, vs VolumeSource) float64 {
	r := k.Range()
	if r <= 0 {
		return 0.0
	}

	closePos := (k.Close - k.Low) / r
	volume := barVolume(k, vs)
	buy := volume * closePos
	sell := volume * (1.0 - closePos)
	return buy - sell
}

func barVolume(k types.KLine, vs VolumeSource) float64 {
	if vs == VolumeSourceTraded {
		return k.Volume
	}

	return float64(k.NumberOfTrades)
}
