package nist

import (
	"fmt"

	"github.com/lost-woods/entropy/src/mathx"
	"github.com/lost-woods/entropy/src/quality"
)

// ChiSquareTest converts the byte-level chi-square uniformity statistic
// into a p-value with 255 degrees of freedom. It requires the sample size
// at which the statistic becomes reliable (expected count >= 5 per bin).
func ChiSquareTest(data []byte) Result {
	if len(data) < quality.MinChiSquareBytes {
		return insufficient(ChiSquare,
			fmt.Sprintf("need at least %d bytes, got %d", quality.MinChiSquareBytes, len(data)))
	}

	chi, _ := quality.ChiSquare(data)
	p := mathx.ChiSquarePValue(float64(quality.ChiSquareDF), chi)
	return pass(ChiSquare, chi, p)
}
