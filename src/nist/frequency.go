package nist

import (
	"fmt"
	"math"

	"github.com/lost-woods/entropy/src/bits"
	"github.com/lost-woods/entropy/src/mathx"
)

// minFrequencyBits is the NIST-recommended minimum sequence length for the
// monobit test.
const minFrequencyBits = 100

// FrequencyTest is the monobit test: the normalized difference between the
// number of ones and zeros should be small for a random sequence.
//
//	S_obs = |sum(2*b_i - 1)| / sqrt(n)
//	p     = erfc(S_obs / sqrt(2))
func FrequencyTest(data []byte) Result {
	v := bits.NewView(data)
	if v.Len() < minFrequencyBits {
		return insufficient(Frequency,
			fmt.Sprintf("need at least %d bits, got %d", minFrequencyBits, v.Len()))
	}
	return frequencyFromBits(v, v.Len())
}

func frequencyFromBits(v bits.View, n int) Result {
	sum := 0
	for i := 0; i < n; i++ {
		sum += 2*int(v.MustBit(i)) - 1
	}

	sObs := math.Abs(float64(sum)) / math.Sqrt(float64(n))
	p := mathx.Erfc(sObs / math.Sqrt2)
	return pass(Frequency, sObs, p)
}
