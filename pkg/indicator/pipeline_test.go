package indicator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volumeflow/cvd/pkg/datatype/floats"
	"github.com/volumeflow/cvd/pkg/indicator"
	"github.com/volumeflow/cvd/pkg/source"
	"github.com/volumeflow/cvd/pkg/types"
)

// closeFractions drives where each generated bar closes within its range so
// the generated deltas cover buy-heavy, sell-heavy and neutral bars.
var closeFractions = []float64{0.0, 0.25, 0.5, 0.75, 1.0}

func generateLowerKLine(seq int, start time.Time) types.KLine {
	low := 100.0 + float64(seq%7)
	high := low + 2.0 + float64(seq%3)
	frac := closeFractions[seq%len(closeFractions)]

	return types.KLine{
		Symbol:         "BTCUSDT",
		Interval:       types.Interval15m,
		StartTime:      start,
		EndTime:        start.Add(15 * time.Minute),
		Open:           low,
		High:           high,
		Low:            low,
		Close:          low + (high-low)*frac,
		Volume:         10.0 + float64(seq%11),
		NumberOfTrades: uint64(5 + seq%13),
		Closed:         true,
	}
}

// appendHour adds one chart bar and its four covering 15m bars.
func appendHour(src *source.MemorySource, h int) {
	start := baseTime.Add(time.Duration(h) * time.Hour)

	native := types.KLine{
		Symbol:    "BTCUSDT",
		Interval:  types.Interval1h,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Closed:    true,
	}

	for q := 0; q < 4; q++ {
		lower := generateLowerKLine(h*4+q, start.Add(time.Duration(q)*15*time.Minute))
		src.AddKLine(lower)

		if q == 0 {
			native.Open = lower.Open
			native.High = lower.High
			native.Low = lower.Low
		}
		if lower.High > native.High {
			native.High = lower.High
		}
		if lower.Low < native.Low {
			native.Low = lower.Low
		}
		native.Close = lower.Close
		native.Volume += lower.Volume
		native.NumberOfTrades += lower.NumberOfTrades
	}

	src.AddKLine(native)
}

func buildSource(hours int) *source.MemorySource {
	src := source.NewMemorySource()
	for h := 0; h < hours; h++ {
		appendHour(src, h)
	}
	return src
}

func snapshot(s floats.Slice) floats.Slice {
	out := make(floats.Slice, len(s))
	copy(out, s)
	return out
}

func assertSameSeries(t *testing.T, a, b *indicator.CVD) {
	t.Helper()
	assert.Equal(t, a.Delta, b.Delta)
	assert.Equal(t, a.Raw, b.Raw)
	assert.Equal(t, a.Smoothed, b.Smoothed)
	assert.Equal(t, a.Positive, b.Positive)
	assert.Equal(t, a.Negative, b.Negative)
}

var testConfigs = map[string]indicator.Config{
	"plain": {
		SourceInterval: types.Interval15m,
		Window:         5,
		VolumeSource:   indicator.VolumeSourceTraded,
	},
	"sma": {
		SourceInterval: types.Interval15m,
		Window:         5,
		SmoothMethod:   indicator.SmoothSMA,
		SmoothWindow:   3,
		VolumeSource:   indicator.VolumeSourceTraded,
	},
	"ema": {
		SourceInterval: types.Interval15m,
		Window:         5,
		SmoothMethod:   indicator.SmoothEMA,
		SmoothWindow:   3,
		VolumeSource:   indicator.VolumeSourceTicks,
	},
}

func TestCVD_SeriesLengths(t *testing.T) {
	src := buildSource(12)

	cvd, err := indicator.New(src, "BTCUSDT", types.Interval1h, testConfigs["ema"])
	require.NoError(t, err)

	cvd.Compute()

	n := src.NumBars(types.Interval1h)
	assert.Equal(t, n, cvd.Delta.Length())
	assert.Equal(t, n, cvd.Raw.Length())
	assert.Equal(t, n, cvd.Length())
	assert.Equal(t, n, cvd.Positive.Length())
	assert.Equal(t, n, cvd.Negative.Length())
}

func TestCVD_RawMatchesDirectSummation(t *testing.T) {
	src := buildSource(12)

	cvd, err := indicator.New(src, "BTCUSDT", types.Interval1h, testConfigs["plain"])
	require.NoError(t, err)

	cvd.Compute()

	window := testConfigs["plain"].Window
	for j := range cvd.Delta {
		lo := j - window + 1
		if lo < 0 {
			lo = 0
		}

		assert.InDelta(t, cvd.Delta[lo:j+1].Sum(), cvd.Raw[j], 1e-9, "position %d", j)
	}

	// no smoothing configured: the smoothed series is the raw series
	assert.Equal(t, cvd.Raw, cvd.Smoothed)
}

func TestCVD_Idempotence(t *testing.T) {
	for name, cfg := range testConfigs {
		t.Run(name, func(t *testing.T) {
			src := buildSource(10)

			cvd, err := indicator.New(src, "BTCUSDT", types.Interval1h, cfg)
			require.NoError(t, err)

			cvd.Compute()
			smoothed := snapshot(cvd.Smoothed)
			delta := snapshot(cvd.Delta)

			// unchanged bars: a second pass must be bit-identical
			cvd.Compute()
			assert.Equal(t, smoothed, cvd.Smoothed)
			assert.Equal(t, delta, cvd.Delta)
		})
	}
}

func TestCVD_IncrementalEqualsFull(t *testing.T) {
	for name, cfg := range testConfigs {
		t.Run(name, func(t *testing.T) {
			src := buildSource(10)

			incremental, err := indicator.New(src, "BTCUSDT", types.Interval1h, cfg)
			require.NoError(t, err)
			incremental.Compute()

			// new bars arrive, only the frontier is recomputed
			appendHour(src, 10)
			incremental.Compute()
			appendHour(src, 11)
			incremental.Compute()

			full, err := indicator.New(src, "BTCUSDT", types.Interval1h, cfg)
			require.NoError(t, err)
			full.Compute()

			assertSameSeries(t, full, incremental)
		})
	}
}

func TestCVD_TickUpdateEqualsFull(t *testing.T) {
	src := buildSource(8)

	cfg := testConfigs["ema"]
	incremental, err := indicator.New(src, "BTCUSDT", types.Interval1h, cfg)
	require.NoError(t, err)
	incremental.Compute()

	// a tick revises the in-progress bar: same start time, new close/volume
	k, ok := src.Bar(types.Interval15m, 0)
	require.True(t, ok)
	k.Close = k.High
	k.Volume += 3
	k.NumberOfTrades += 2
	src.AddKLine(k)

	incremental.Compute()

	full, err := indicator.New(src, "BTCUSDT", types.Interval1h, cfg)
	require.NoError(t, err)
	full.Compute()

	assertSameSeries(t, full, incremental)
}

func TestCVD_CoarserSourceIntervalFallsBack(t *testing.T) {
	src := buildSource(4)

	cfg := indicator.Config{
		SourceInterval: types.Interval4h,
		Window:         3,
	}

	cvd, err := indicator.New(src, "BTCUSDT", types.Interval1h, cfg)
	require.NoError(t, err)
	assert.Equal(t, types.Interval1h, cvd.EffectiveSourceInterval())
}

func TestCVD_SetupValidation(t *testing.T) {
	src := buildSource(2)

	tests := []struct {
		name string
		cfg  indicator.Config
	}{
		{name: "zero window", cfg: indicator.Config{Window: 0}},
		{name: "negative smooth window", cfg: indicator.Config{Window: 5, SmoothMethod: indicator.SmoothEMA, SmoothWindow: -1}},
		{name: "invalid smooth method", cfg: indicator.Config{Window: 5, SmoothMethod: "wma"}},
		{name: "invalid volume source", cfg: indicator.Config{Window: 5, VolumeSource: "quote"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := indicator.New(src, "BTCUSDT", types.Interval1h, tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestCVD_UpdateCallback(t *testing.T) {
	src := buildSource(6)

	cvd, err := indicator.New(src, "BTCUSDT", types.Interval1h, testConfigs["sma"])
	require.NoError(t, err)

	var updates []float64
	cvd.OnUpdate(func(v float64) {
		updates = append(updates, v)
	})

	cvd.Compute()
	require.Len(t, updates, 1)
	assert.Equal(t, cvd.Last(), updates[0])
}
