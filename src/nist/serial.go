package nist

import (
	"fmt"

	"github.com/lost-woods/entropy/src/bits"
	"github.com/lost-woods/entropy/src/mathx"
)

// serialM is the pattern length for the serial test. m=3 exercises both
// difference statistics with non-trivial degrees of freedom, which m=2
// does not.
const serialM = 3

// minSerialBits = 2^(m+2), the practical minimum for the overlapping
// pattern counts to be meaningful.
const minSerialBits = 1 << (serialM + 2)

// SerialTest checks the uniformity of overlapping m-bit patterns
// (with cyclic wraparound) via the psi-square statistics of SP 800-22
// section 2.11:
//
//	del1 = psi2(m) - psi2(m-1)
//	del2 = psi2(m) - 2*psi2(m-1) + psi2(m-2)
//	P1   = igamc(2^(m-2), del1/2)
//	P2   = igamc(2^(m-3), del2/2)
//
// The reported p-value is min(P1, P2), the conservative combination.
func SerialTest(data []byte) Result {
	v := bits.NewView(data)
	if v.Len() < minSerialBits {
		return insufficient(Serial,
			fmt.Sprintf("need at least %d bits, got %d", minSerialBits, v.Len()))
	}
	return serialFromBits(v, v.Len())
}

func serialFromBits(v bits.View, n int) Result {
	psiM := psiSquared(v, n, serialM)
	psiM1 := psiSquared(v, n, serialM-1)
	psiM2 := psiSquared(v, n, serialM-2)

	del1 := psiM - psiM1
	del2 := psiM - 2*psiM1 + psiM2

	// Mathematically non-negative; clamp float residue.
	if del1 < 0 {
		del1 = 0
	}
	if del2 < 0 {
		del2 = 0
	}

	// igamc(2^(m-2), del/2) == chi-square survival with 2^(m-1) df.
	p1 := mathx.ChiSquarePValue(float64(int(1)<<(serialM-1)), del1)
	p2 := mathx.ChiSquarePValue(float64(int(1)<<(serialM-2)), del2)

	p := p1
	if p2 < p {
		p = p2
	}
	return pass(Serial, del1, p)
}

// psiSquared computes the psi-square statistic over all n cyclic
// overlapping m-bit patterns:
//
//	psi2(m) = (2^m / n) * sum(count_pattern^2) - n
func psiSquared(v bits.View, n, m int) float64 {
	if m <= 0 {
		return 0
	}

	counts := make([]int, 1<<uint(m))
	for i := 0; i < n; i++ {
		pattern := 0
		for j := 0; j < m; j++ {
			pattern = pattern<<1 | int(v.MustBit((i+j)%n))
		}
		counts[pattern]++
	}

	sum := 0.0
	for _, c := range counts {
		sum += float64(c) * float64(c)
	}
	return sum*float64(int(1)<<uint(m))/float64(n) - float64(n)
}
