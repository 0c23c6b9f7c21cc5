package indicator

// Split partitions a smoothed value into the positive and negative histogram
// channels. Zero lands in the positive channel; the invariant is
// positive + negative == v with positive >= 0 and negative <= 0.
func Split(v float64) (positive, negative float64) {
	if v >= 0 {
		return v, 0.0
	}

	return 0.0, v
}
