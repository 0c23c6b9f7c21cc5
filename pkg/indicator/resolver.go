package indicator

import (
	"github.com/volumeflow/cvd/pkg/types"
)

// ResolveSourceInterval picks the interval the delta estimator samples from.
// Sampling must come from equal-or-finer granularity, so an empty or coarser
// requested interval falls back to the chart's native interval. The choice
// is made once at setup, never per bar.
func ResolveSourceInterval(requested, native types.Interval) types.Interval {
	if requested == "" {
		return native
	}

	if requested.Duration() > native.Duration() {
		return native
	}

	return requested
}
