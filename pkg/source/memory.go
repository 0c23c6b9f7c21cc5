package source

import (
	"sort"
	"time"

	"github.com/volumeflow/cvd/pkg/indicator"
	"github.com/volumeflow/cvd/pkg/types"
)

// MemorySource keeps the bar history of one symbol in memory, ordered oldest
// first per interval, and serves the synchronous bar lookups of the
// indicator pipeline.
type MemorySource struct {
	kLines map[types.Interval][]types.KLine
}

func NewMemorySource() *MemorySource {
	return &MemorySource{
		kLines: make(map[types.Interval][]types.KLine),
	}
}

// SetKLines replaces the history of one interval. kLines must be ordered by
// ascending start time.
func (s *MemorySource) SetKLines(interval types.Interval, kLines []types.KLine) {
	s.kLines[interval] = kLines
}

// AddKLine appends a bar, or replaces the most recent bar when the start
// time matches (a tick update to the in-progress bar).
func (s *MemorySource) AddKLine(k types.KLine) {
	kLines := s.kLines[k.Interval]
	if n := len(kLines); n > 0 && kLines[n-1].StartTime.Equal(k.StartTime) {
		kLines[n-1] = k
		return
	}

	s.kLines[k.Interval] = append(kLines, k)
}

func (s *MemorySource) NumBars(interval types.Interval) int {
	return len(s.kLines[interval])
}

func (s *MemorySource) Bar(interval types.Interval, i int) (types.KLine, bool) {
	kLines := s.kLines[interval]
	n := len(kLines)
	if i < 0 || n-1-i < 0 {
		return types.KLine{}, false
	}

	return kLines[n-1-i], true
}

func (s *MemorySource) IndexAtOrAfter(interval types.Interval, t time.Time) (int, bool) {
	kLines := s.kLines[interval]
	n := len(kLines)

	pos := sort.Search(n, func(x int) bool {
		return !kLines[x].StartTime.Before(t)
	})
	if pos == n {
		return 0, false
	}

	return n - 1 - pos, true
}

var _ indicator.BarSource = (*MemorySource)(nil)
