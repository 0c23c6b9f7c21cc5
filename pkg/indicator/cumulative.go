package indicator

import (
	"github.com/volumeflow/cvd/pkg/datatype/floats"
)

// RollingSum maintains the fixed-window cumulative sum over the per-bar
// delta series. The window shrinks near the oldest bar instead of leaving
// those positions undefined.
type RollingSum struct {
	Window int
}

// Apply recomputes out[from:] from values[from:]; positions below from are
// kept as-is. Slices are ordered oldest first. A running sum keeps the full
// pass linear instead of re-summing the window at every step.
func (r *RollingSum) Apply(values floats.Slice, out *floats.Slice, from int) {
	if from > len(*out) {
		from = len(*out)
	}

	// the running sum after position j is exactly out[j], so resuming from
	// the previous output keeps incremental passes bit-identical to a full
	// recomputation
	sum := 0.0
	if from > 0 {
		sum = (*out)[from-1]
	}
	*out = (*out)[:from]

	for j := from; j < len(values); j++ {
		sum += values[j]
		if j-r.Window >= 0 {
			sum -= values[j-r.Window]
		}

		out.Push(sum)
	}
}
