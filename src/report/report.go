// Package report assembles the quality metrics and test results for one
// sample into a single immutable record.
package report

import (
	"github.com/pkg/errors"

	"github.com/lost-woods/entropy/src/entropy"
	"github.com/lost-woods/entropy/src/nist"
	"github.com/lost-woods/entropy/src/quality"
)

// Report is the merged outcome of one analysis run. It is a plain value:
// copy it freely, nothing mutates it after assembly.
type Report struct {
	Source     string          `json:"source"`
	SampleSize int             `json:"sample_size"`
	Metrics    quality.Metrics `json:"metrics"`
	Tests      []nist.Result   `json:"tests"`
	TestsRun   int             `json:"tests_run"`
	TestsPass  int             `json:"tests_passed"`
}

// Assemble merges precomputed metrics and test results.
func Assemble(sourceName string, sampleSize int, m quality.Metrics, results []nist.Result) Report {
	run := 0
	passed := 0
	for _, r := range results {
		if !r.Applicable {
			continue
		}
		run++
		if r.Passed {
			passed++
		}
	}

	tests := make([]nist.Result, len(results))
	copy(tests, results)

	return Report{
		Source:     sourceName,
		SampleSize: sampleSize,
		Metrics:    m,
		Tests:      tests,
		TestsRun:   run,
		TestsPass:  passed,
	}
}

// Analyze pulls sampleSize bytes from the source and runs the full
// battery: quality metrics and all five statistical tests over the same
// buffer. A source failure aborts the run.
func Analyze(src entropy.Source, sampleSize int) (Report, error) {
	if sampleSize < 1 {
		return Report{}, errors.Errorf("sample size must be at least 1 byte, got %d", sampleSize)
	}

	buf := make([]byte, sampleSize)
	if err := src.Fill(buf); err != nil {
		return Report{}, errors.Wrap(err, "sampling entropy source")
	}

	return AnalyzeBuffer(src.Name(), buf), nil
}

// AnalyzeBuffer runs the battery over an already-materialized buffer.
func AnalyzeBuffer(sourceName string, buf []byte) Report {
	return Assemble(sourceName, len(buf), quality.Compute(buf), nist.RunAll(buf))
}
