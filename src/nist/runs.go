package nist

import (
	"fmt"
	"math"

	"github.com/lost-woods/entropy/src/bits"
	"github.com/lost-woods/entropy/src/mathx"
)

const minRunsBits = 100

// RunsTest counts the number of uninterrupted runs of identical bits. Too
// few runs means the bits cluster; too many means they oscillate.
//
// The test is only meaningful when the monobit proportion pi is inside
// 0.5 +/- 2/sqrt(n); outside that band the sequence has already failed
// the frequency precondition and the result is an explicit non-pass.
func RunsTest(data []byte) Result {
	v := bits.NewView(data)
	if v.Len() < minRunsBits {
		return insufficient(Runs,
			fmt.Sprintf("need at least %d bits, got %d", minRunsBits, v.Len()))
	}
	return runsFromBits(v, v.Len())
}

func runsFromBits(v bits.View, n int) Result {
	nf := float64(n)
	pi := float64(v.Ones(n)) / nf

	if math.Abs(pi-0.5) >= 2.0/math.Sqrt(nf) {
		return degenerate(Runs, pi,
			fmt.Sprintf("monobit proportion %.4f outside 0.5 +/- 2/sqrt(n); test not applicable", pi))
	}

	runs := 1
	for i := 1; i < n; i++ {
		if v.MustBit(i) != v.MustBit(i-1) {
			runs++
		}
	}

	vObs := float64(runs)
	numerator := math.Abs(vObs - 2.0*nf*pi*(1.0-pi))
	denominator := 2.0 * math.Sqrt(2.0*nf) * pi * (1.0 - pi)

	p := mathx.Erfc(numerator / denominator)
	return pass(Runs, vObs, p)
}
