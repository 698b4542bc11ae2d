package nist

import (
	"fmt"

	"github.com/lost-woods/entropy/src/bits"
	"github.com/lost-woods/entropy/src/mathx"
)

const minLongestRunBits = 128

// longestRunParams are the NIST-tabulated block size, category bounds and
// theoretical category probabilities, selected by sequence length
// (SP 800-22 rev1a, section 2.4).
type longestRunParams struct {
	m      int       // block size in bits
	lo, hi int       // runs <= lo map to the first category, >= hi to the last
	pi     []float64 // theoretical category probabilities
}

func paramsFor(n int) longestRunParams {
	switch {
	case n < 6272:
		return longestRunParams{m: 8, lo: 1, hi: 4,
			pi: []float64{0.2148, 0.3672, 0.2305, 0.1875}}
	case n < 750000:
		return longestRunParams{m: 128, lo: 4, hi: 9,
			pi: []float64{0.1174, 0.2430, 0.2493, 0.1752, 0.1027, 0.1124}}
	default:
		return longestRunParams{m: 10000, lo: 10, hi: 16,
			pi: []float64{0.0882, 0.2092, 0.2483, 0.1933, 0.1208, 0.0675, 0.0727}}
	}
}

// LongestRunTest buckets the longest run of ones in each M-bit block into
// the NIST categories and compares the counts against the theoretical
// probabilities with a chi-square statistic.
func LongestRunTest(data []byte) Result {
	v := bits.NewView(data)
	if v.Len() < minLongestRunBits {
		return insufficient(LongestRun,
			fmt.Sprintf("need at least %d bits, got %d", minLongestRunBits, v.Len()))
	}
	return longestRunFromBits(v, v.Len())
}

func longestRunFromBits(v bits.View, n int) Result {
	params := paramsFor(n)
	numBlocks := n / params.m

	counts := make([]int, len(params.pi))
	for block := 0; block < numBlocks; block++ {
		longest := 0
		run := 0
		for i := block * params.m; i < (block+1)*params.m; i++ {
			if v.MustBit(i) == 1 {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 0
			}
		}

		switch {
		case longest <= params.lo:
			counts[0]++
		case longest >= params.hi:
			counts[len(counts)-1]++
		default:
			counts[longest-params.lo]++
		}
	}

	chi := 0.0
	for i, count := range counts {
		expected := float64(numBlocks) * params.pi[i]
		diff := float64(count) - expected
		chi += diff * diff / expected
	}

	// k categories give k-1 degrees of freedom.
	df := float64(len(params.pi) - 1)
	p := mathx.ChiSquarePValue(df, chi)
	return pass(LongestRun, chi, p)
}
