package kit

// DistributeNotes returns n contiguous, increasing notes within [lo, hi]. The run is
// centered on med, with the extra note of an even count going above the median; when
// centering would cross a bound the run is packed against that bound instead.
// The second return value reports whether the run had to be packed.
func DistributeNotes(n, lo, hi, med int) ([]int, bool, error) {
	if n > hi-lo+1 {
		return nil, false, &TooManySamplesError{Count: n, Min: lo, Max: hi}
	}

	if n <= 0 {
		return []int{}, false, nil
	}

	start := med - (n-1)/2
	end := start + n - 1
	packed := false

	switch {
	case start < lo:
		start = lo
		packed = true
	case end > hi:
		start = hi - n + 1
		packed = true
	}

	notes := make([]int, n)
	for i := range notes {
		notes[i] = start + i
	}

	return notes, packed, nil
}
