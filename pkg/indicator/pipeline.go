package indicator

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/volumeflow/cvd/pkg/datatype/floats"
	"github.com/volumeflow/cvd/pkg/types"
)

/*
CVD computes the cumulative volume delta of one symbol.

Each chart bar is decomposed into the bars of a finer source interval, the
per-bar signed delta volume is estimated from the close position inside the
bar range, the deltas are rolled into a fixed-window cumulative sum, and the
raw sum is optionally smoothed with an SMA or EMA. The smoothed series is
split into positive and negative channels for two-tone histogram rendering.

The computation is single-threaded and cooperative with the host's event
loop: call Compute after every new bar or tick update. Only the suffix of
bars changed since the previous pass is recomputed.
*/
type CVD struct {
	Float64Updater

	symbol string
	native types.Interval
	config Config

	source    BarSource
	estimator *DeltaEstimator
	rolling   *RollingSum
	smoother  *Smoother

	// output series, ordered oldest first; owned by this pipeline and
	// read-only to everyone else
	Delta    floats.Slice
	Raw      floats.Slice
	Smoothed floats.Slice
	Positive floats.Slice
	Negative floats.Slice

	// start time of the most recent bar of the previous pass; every bar at
	// or after it is re-computable, everything older is finalized
	lastOpenTime time.Time
}

// New validates the configuration and fixes the effective source interval.
// Configuration errors abort the setup before the first computation.
func New(source BarSource, symbol string, native types.Interval, cfg Config) (*CVD, error) {
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "cvd setup")
	}

	effective := ResolveSourceInterval(cfg.SourceInterval, native)
	if cfg.SourceInterval != "" && effective != cfg.SourceInterval {
		log.Warnf("cvd: source interval %s is coarser than the chart interval %s, falling back to %s",
			cfg.SourceInterval, native, native)
	}

	return &CVD{
		symbol: symbol,
		native: native,
		config: cfg,
		source: source,
		estimator: &DeltaEstimator{
			Source:       source,
			Native:       native,
			Effective:    effective,
			VolumeSource: cfg.VolumeSource,
		},
		rolling:  &RollingSum{Window: cfg.Window},
		smoother: NewSmoother(cfg.SmoothMethod, cfg.SmoothWindow),
	}, nil
}

// EffectiveSourceInterval returns the interval the estimator samples from
// after the setup-time fallback.
func (inc *CVD) EffectiveSourceInterval() types.Interval {
	return inc.estimator.Effective
}

// Compute runs one computation pass. The first pass treats every bar as
// changed; later passes recompute from the newest changed bar only, so the
// EMA seed is derived once at the true oldest boundary and never again.
func (inc *CVD) Compute() {
	n := inc.source.NumBars(inc.native)
	if n == 0 {
		inc.Delta = inc.Delta[:0]
		inc.Raw = inc.Raw[:0]
		inc.Smoothed = inc.Smoothed[:0]
		inc.Positive = inc.Positive[:0]
		inc.Negative = inc.Negative[:0]
		return
	}

	from := inc.recomputeStart(n)

	if from > len(inc.Delta) {
		from = len(inc.Delta)
	}
	inc.Delta = inc.Delta[:from]
	for j := from; j < n; j++ {
		inc.Delta.Push(inc.estimator.Estimate(n - 1 - j))
	}

	inc.rolling.Apply(inc.Delta, &inc.Raw, from)
	inc.smoother.Apply(inc.Raw, &inc.Smoothed, from)

	inc.Positive = inc.Positive[:from]
	inc.Negative = inc.Negative[:from]
	for j := from; j < n; j++ {
		positive, negative := Split(inc.Smoothed[j])
		inc.Positive.Push(positive)
		inc.Negative.Push(negative)
	}

	if newest, ok := inc.source.Bar(inc.native, 0); ok {
		inc.lastOpenTime = newest.StartTime
	}

	if len(inc.Smoothed) != n {
		log.Warnf("%s CVD value length (%d) != bar count (%d)", inc.native, len(inc.Smoothed), n)
	}

	inc.EmitUpdate(inc.Smoothed.Last())
	inc.updateMetrics()
}

// recomputeStart returns the oldest-first position of the first bar that
// needs recomputation: the oldest bar whose start time is not before the
// previous pass's frontier. Bar count shrinking across passes falls back to
// a full recomputation.
func (inc *CVD) recomputeStart(n int) int {
	if inc.lastOpenTime.IsZero() || n < len(inc.Delta) {
		return 0
	}

	from := n
	for i := 0; i < n; i++ {
		k, ok := inc.source.Bar(inc.native, i)
		if !ok || k.StartTime.Before(inc.lastOpenTime) {
			break
		}

		from = n - 1 - i
	}

	return from
}

func (inc *CVD) Last() float64 {
	return inc.Smoothed.Last()
}

func (inc *CVD) Index(i int) float64 {
	return inc.Smoothed.Index(i)
}

func (inc *CVD) Length() int {
	return inc.Smoothed.Length()
}

var _ types.Series = &CVD{}
