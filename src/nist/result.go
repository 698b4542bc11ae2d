// Package nist implements the SP 800-22 subset used to screen entropy
// sources: Frequency (monobit), Runs, Longest Run of Ones, Serial, and the
// byte-level Chi-Square test. Every test is a pure function of the input
// buffer; results never depend on call order.
package nist

// Alpha is the NIST default significance level. A p-value at or above
// Alpha counts as a pass.
const Alpha = 0.01

// Kind identifies one of the five tests.
type Kind string

const (
	Frequency  Kind = "Frequency"
	Runs       Kind = "Runs"
	LongestRun Kind = "LongestRun"
	Serial     Kind = "Serial"
	ChiSquare  Kind = "ChiSquare"
)

// Result is the outcome of a single test.
//
// When Applicable is false the input was below the test's documented
// minimum length; PValue and Passed are meaningless and Reason explains
// why. A fabricated p-value on insufficient data would be
// indistinguishable from a genuine verdict, so none is ever produced.
type Result struct {
	Kind       Kind    `json:"name"`
	Statistic  float64 `json:"statistic"`
	PValue     float64 `json:"p_value"`
	Passed     bool    `json:"passed"`
	Applicable bool    `json:"applicable"`
	Reason     string  `json:"reason,omitempty"`
}

func pass(kind Kind, statistic, p float64) Result {
	return Result{
		Kind:       kind,
		Statistic:  statistic,
		PValue:     p,
		Passed:     p >= Alpha,
		Applicable: true,
	}
}

func degenerate(kind Kind, statistic float64, reason string) Result {
	return Result{
		Kind:       kind,
		Statistic:  statistic,
		PValue:     0,
		Passed:     false,
		Applicable: true,
		Reason:     reason,
	}
}

func insufficient(kind Kind, reason string) Result {
	return Result{
		Kind:       kind,
		Applicable: false,
		Reason:     reason,
	}
}

// RunAll executes the full battery in its fixed declaration order:
// Frequency, Runs, LongestRun, Serial, ChiSquare.
func RunAll(data []byte) []Result {
	return []Result{
		FrequencyTest(data),
		RunsTest(data),
		LongestRunTest(data),
		SerialTest(data),
		ChiSquareTest(data),
	}
}
