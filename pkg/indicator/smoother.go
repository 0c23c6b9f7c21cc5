package indicator

import (
	"github.com/pkg/errors"

	"github.com/volumeflow/cvd/pkg/datatype/floats"
)

type SmoothMethod string

const (
	SmoothNone = SmoothMethod("none")
	SmoothSMA  = SmoothMethod("sma")
	SmoothEMA  = SmoothMethod("ema")
)

func ParseSmoothMethod(s string) (SmoothMethod, error) {
	switch SmoothMethod(s) {
	case SmoothNone, SmoothSMA, SmoothEMA:
		return SmoothMethod(s), nil
	case "":
		return SmoothNone, nil
	}

	return "", errors.Errorf("invalid smooth method: %s", s)
}

// Smoother applies the configured moving average to the raw cumulative
// series. The EMA seed state is explicit so incremental recomputation never
// re-derives the seed mid-history; testing the last value against zero is
// ambiguous because a genuine smoothed value can be zero.
type Smoother struct {
	Method SmoothMethod
	Window int

	multiplier float64
	seeded     bool
}

func NewSmoother(method SmoothMethod, window int) *Smoother {
	return &Smoother{
		Method:     method,
		Window:     window,
		multiplier: 2.0 / float64(1+window),
	}
}

// Identity reports whether smoothing is a pass-through. A window of 1 (or
// less) behaves the same as no smoothing.
func (s *Smoother) Identity() bool {
	return s.Method == SmoothNone || s.Window <= 1
}

// Apply recomputes out[from:] from raw[from:]; positions below from must
// hold the previously computed values. Slices are ordered oldest first and
// the fold runs strictly oldest to newest.
func (s *Smoother) Apply(raw floats.Slice, out *floats.Slice, from int) {
	if from > len(*out) {
		from = len(*out)
	}
	*out = (*out)[:from]

	if from == 0 {
		s.seeded = false
	} else {
		s.seeded = true
	}

	switch {
	case s.Identity():
		for j := from; j < len(raw); j++ {
			out.Push(raw[j])
		}

	case s.Method == SmoothSMA:
		for j := from; j < len(raw); j++ {
			out.Push(raw[:j+1].Tail(s.Window).Mean())
		}

	case s.Method == SmoothEMA:
		for j := from; j < len(raw); j++ {
			if !s.seeded {
				// the oldest boundary seeds with the shrinking-window SMA
				out.Push(raw[:j+1].Tail(s.Window).Mean())
				s.seeded = true
				continue
			}

			prev := (*out)[j-1]
			out.Push((raw[j]-prev)*s.multiplier + prev)
		}
	}
}
