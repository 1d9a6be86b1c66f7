package kit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributeNotes(t *testing.T) {
	tests := []struct {
		name         string
		n            int
		lo, hi, med  int
		expected     []int
		expectPacked bool
	}{
		{name: "centered odd count", n: 3, lo: 0, hi: 127, med: 60, expected: []int{59, 60, 61}},
		{name: "centered even count", n: 4, lo: 0, hi: 127, med: 60, expected: []int{59, 60, 61, 62}},
		{name: "single sample on median", n: 1, lo: 0, hi: 127, med: 60, expected: []int{60}},
		{name: "packed against low bound", n: 3, lo: 0, hi: 4, med: 0, expected: []int{0, 1, 2}, expectPacked: true},
		{name: "packed against high bound", n: 4, lo: 0, hi: 127, med: 127, expected: []int{124, 125, 126, 127}, expectPacked: true},
		{name: "fills the whole range", n: 5, lo: 10, hi: 14, med: 12, expected: []int{10, 11, 12, 13, 14}},
		{name: "fills the whole range off center", n: 5, lo: 10, hi: 14, med: 10, expected: []int{10, 11, 12, 13, 14}, expectPacked: true},
		{name: "no samples", n: 0, lo: 0, hi: 127, med: 60, expected: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, packed, err := DistributeNotes(tt.n, tt.lo, tt.hi, tt.med)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, notes)
			assert.Equal(t, tt.expectPacked, packed)
		})
	}
}

func TestDistributeNotes_TooManySamples(t *testing.T) {
	_, _, err := DistributeNotes(5, 0, 3, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManySamples)

	var tooMany *TooManySamplesError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 5, tooMany.Count)
	assert.Equal(t, 4, tooMany.Available())
}

func TestDistributeNotes_Properties(t *testing.T) {
	for lo := 0; lo <= 127; lo += 9 {
		for hi := lo; hi <= 127; hi += 11 {
			for med := lo; med <= hi; med += 7 {
				for n := 0; n <= hi-lo+1; n += 3 {
					notes, _, err := DistributeNotes(n, lo, hi, med)
					require.NoError(t, err)
					require.Len(t, notes, n)

					for i, note := range notes {
						require.GreaterOrEqual(t, note, lo)
						require.LessOrEqual(t, note, hi)
						if i > 0 {
							require.Equal(t, notes[i-1]+1, note, "notes must be contiguous and increasing")
						}
					}
				}

				_, _, err := DistributeNotes(hi-lo+2, lo, hi, med)
				require.ErrorIs(t, err, ErrTooManySamples)
			}
		}
	}
}
