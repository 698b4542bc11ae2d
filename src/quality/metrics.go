// Package quality computes entropy quality metrics over a byte sample:
// Shannon entropy, min-entropy, chi-square uniformity, and an aggregate
// 0-100 score. Every function is a pure function of its input buffer.
package quality

import (
	"math"

	"github.com/lost-woods/entropy/src/bits"
	"github.com/lost-woods/entropy/src/mathx"
)

// MinChiSquareBytes is the sample size below which the chi-square statistic
// is unreliable (expected count per bin drops under 5).
const MinChiSquareBytes = 256 * 5

// ChiSquareDF is the degrees of freedom of the byte-level chi-square
// statistic (256 bins - 1).
const ChiSquareDF = 255

// Metrics is an immutable snapshot of the quality measurements for one
// sample buffer.
type Metrics struct {
	TotalBytes        int      `json:"total_bytes"`
	Histogram         [256]int `json:"-"`
	Shannon           float64  `json:"shannon_entropy"`
	MinEntropy        float64  `json:"min_entropy"`
	ChiSquare         float64  `json:"chi_square"`
	ChiSquareReliable bool     `json:"chi_square_reliable"`
	Mean              float64  `json:"mean"`
	LongestBitRun     int      `json:"longest_bit_run"`
	Score             float64  `json:"overall_score"`
}

func histogram(data []byte) [256]int {
	var h [256]int
	for _, b := range data {
		h[b]++
	}
	return h
}

// Shannon returns the Shannon entropy of the byte distribution in bits per
// byte. The maximum is 8.0, reached by an exactly uniform histogram.
func Shannon(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	h := histogram(data)
	n := float64(len(data))

	entropy := 0.0
	for _, count := range h {
		if count == 0 {
			continue
		}
		p := float64(count) / n
		entropy -= p * mathx.Log2(p)
	}
	return entropy
}

// MinEntropy returns -log2 of the most probable byte value, the
// conservative worst-case entropy estimate. Always <= Shannon(data).
func MinEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	h := histogram(data)
	max := 0
	for _, count := range h {
		if count > max {
			max = count
		}
	}
	return -mathx.Log2(float64(max) / float64(len(data)))
}

// ChiSquare returns the chi-square statistic of the byte histogram against
// a uniform distribution over 256 bins. reliable is false when the sample
// is smaller than MinChiSquareBytes; the statistic is still returned, but
// callers must not treat it as trustworthy.
func ChiSquare(data []byte) (stat float64, reliable bool) {
	if len(data) == 0 {
		return 0, false
	}

	h := histogram(data)
	expected := float64(len(data)) / 256.0

	for _, count := range h {
		diff := float64(count) - expected
		stat += diff * diff / expected
	}
	return stat, len(data) >= MinChiSquareBytes
}

// Mean returns the average byte value; ~127.5 for a uniform distribution.
func Mean(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	var sum uint64
	for _, b := range data {
		sum += uint64(b)
	}
	return float64(sum) / float64(len(data))
}

// LongestBitRun returns the length of the longest run of identical bits,
// scanned most-significant bit first.
func LongestBitRun(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	v := bits.NewView(data)
	last := v.MustBit(0)
	run := 0
	max := 0
	for i := 0; i < v.Len(); i++ {
		if v.MustBit(i) == last {
			run++
		} else {
			last = v.MustBit(i)
			run = 1
		}
		if run > max {
			max = run
		}
	}
	return max
}

// Score combines the metrics into a single 0-100 quality score.
//
// The weights are fixed and part of the contract:
//
//	0.5 * (shannon / 8 * 100)
//	0.3 * (minEntropy / 8 * 100)
//	0.2 * (100 / (1 + |chiSquare - 255| / 255))
//
// The third term rewards a chi-square statistic close to its expectation
// (the 255 degrees of freedom of the byte histogram) and decays smoothly
// as the statistic drifts in either direction.
func Score(shannon, minEntropy, chiSquare float64) float64 {
	shannonScore := shannon / 8.0 * 100.0
	minScore := minEntropy / 8.0 * 100.0

	drift := math.Abs(chiSquare-float64(ChiSquareDF)) / float64(ChiSquareDF)
	uniformityScore := 100.0 / (1.0 + drift)

	return 0.5*shannonScore + 0.3*minScore + 0.2*uniformityScore
}

// Compute measures every metric for the given buffer.
func Compute(data []byte) Metrics {
	chi, reliable := ChiSquare(data)
	shannon := Shannon(data)
	minEnt := MinEntropy(data)

	return Metrics{
		TotalBytes:        len(data),
		Histogram:         histogram(data),
		Shannon:           shannon,
		MinEntropy:        minEnt,
		ChiSquare:         chi,
		ChiSquareReliable: reliable,
		Mean:              Mean(data),
		LongestBitRun:     LongestBitRun(data),
		Score:             Score(shannon, minEnt, chi),
	}
}
