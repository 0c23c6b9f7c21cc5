package floats

type Slice []float64

func New(a ...float64) Slice {
	return Slice(a)
}

func (s *Slice) Push(v float64) {
	*s = append(*s, v)
}

func (s *Slice) Pop(i int64) (v float64) {
	v = (*s)[i]
	*s = append((*s)[:i], (*s)[i+1:]...)
	return v
}

func (s Slice) Sum() (sum float64) {
	for _, v := range s {
		sum += v
	}
	return sum
}

func (s Slice) Mean() (mean float64) {
	length := len(s)
	if length == 0 {
		return 0.0
	}

	return s.Sum() / float64(length)
}

// Tail returns the last size elements as a copy. If size is larger than the
// slice length, the whole slice is copied.
func (s Slice) Tail(size int) Slice {
	length := len(s)
	if length <= size {
		win := make(Slice, length)
		copy(win, s)
		return win
	}

	win := make(Slice, size)
	copy(win, s[length-size:])
	return win
}

// Truncate keeps the last size elements in place.
func (s Slice) Truncate(size int) Slice {
	if size < 0 || len(s) <= size {
		return s
	}

	return s[len(s)-size:]
}

func (s Slice) Last() float64 {
	length := len(s)
	if length > 0 {
		return s[length-1]
	}
	return 0.0
}

// Index fetches the element from the end of the slice, Index(0) is the most
// recent element.
func (s Slice) Index(i int) float64 {
	length := len(s)
	if length-i <= 0 || i < 0 {
		return 0.0
	}
	return s[length-i-1]
}

func (s Slice) Length() int {
	return len(s)
}
