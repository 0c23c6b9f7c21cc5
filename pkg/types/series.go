package types

// Series is the interface for the indicator output values (SMA, EMA and the
// derived series are all returning float64 data).
type Series interface {
	Last() float64
	Index(i int) float64
	Length() int
}
