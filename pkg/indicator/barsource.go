package indicator

import (
	"time"

	"github.com/volumeflow/cvd/pkg/types"
)

// BarSource provides synchronous, in-memory access to the bar history of one
// symbol at multiple intervals. Index 0 is the most recent bar; higher
// indexes walk back into history.
type BarSource interface {
	NumBars(interval types.Interval) int

	// Bar returns the bar at index i, ok is false when the index is out of
	// range or the interval has no data.
	Bar(interval types.Interval, i int) (k types.KLine, ok bool)

	// IndexAtOrAfter returns the index of the chronologically earliest bar
	// whose start time is not before t. ok is false when every bar starts
	// before t or the interval has no data.
	IndexAtOrAfter(interval types.Interval, t time.Time) (i int, ok bool)
}
