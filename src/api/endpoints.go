package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lost-woods/entropy/src/bench"
	"github.com/lost-woods/entropy/src/cipher"
	"github.com/lost-woods/entropy/src/report"
)

func (h *Handlers) sampleSize(c *gin.Context) (int, bool) {
	sizeVar := c.DefaultQuery("size", strconv.Itoa(h.defaultSampleSize))
	size, err := strconv.Atoi(sizeVar)
	if err != nil || size < 1 || size > h.maxSampleSize {
		responder{c}.err(http.StatusBadRequest,
			fmt.Sprintf("Size must be an integer between 1 and %d bytes.", h.maxSampleSize))
		return 0, false
	}
	return size, true
}

// Analyze samples the source and returns the full quality report: metrics
// plus the five statistical tests.
func (h *Handlers) Analyze(c *gin.Context) {
	size, ok := h.sampleSize(c)
	if !ok {
		return
	}

	h.handleSource(c, func() (string, gin.H, int, string) {
		rep, err := report.Analyze(h.src, size)
		if err != nil {
			if h.health != nil {
				h.health.Set(false, "error sampling source: "+err.Error())
			}
			h.log.Errorw("analysis failed", "size", size, "error", err)
			return "", nil, http.StatusInternalServerError, "Error sampling entropy source."
		}

		var out strings.Builder
		fmt.Fprintf(&out, "Source: %s (%d bytes)\n", rep.Source, rep.SampleSize)
		fmt.Fprintf(&out, "Shannon entropy: %.4f bits/byte\n", rep.Metrics.Shannon)
		fmt.Fprintf(&out, "Min-entropy:     %.4f bits/byte\n", rep.Metrics.MinEntropy)
		fmt.Fprintf(&out, "Chi-square:      %.2f\n", rep.Metrics.ChiSquare)
		fmt.Fprintf(&out, "Score:           %.1f/100\n", rep.Metrics.Score)
		fmt.Fprintf(&out, "Tests passed:    %d/%d", rep.TestsPass, rep.TestsRun)

		return out.String(), gin.H{"report": rep}, 0, ""
	})
}

// Tests runs only the statistical battery and returns the per-test
// verdicts in their fixed order.
func (h *Handlers) Tests(c *gin.Context) {
	size, ok := h.sampleSize(c)
	if !ok {
		return
	}

	h.handleSource(c, func() (string, gin.H, int, string) {
		rep, err := report.Analyze(h.src, size)
		if err != nil {
			if h.health != nil {
				h.health.Set(false, "error sampling source: "+err.Error())
			}
			h.log.Errorw("test run failed", "size", size, "error", err)
			return "", nil, http.StatusInternalServerError, "Error sampling entropy source."
		}

		var out strings.Builder
		for i, r := range rep.Tests {
			verdict := "PASS"
			switch {
			case !r.Applicable:
				verdict = "N/A (" + r.Reason + ")"
			case !r.Passed:
				verdict = "FAIL"
			}
			fmt.Fprintf(&out, "%-10s p=%.6f %s", r.Kind, r.PValue, verdict)
			if i < len(rep.Tests)-1 {
				out.WriteByte('\n')
			}
		}

		return out.String(), gin.H{"sample_size": size, "tests": rep.Tests}, 0, ""
	})
}

// Bytes returns raw bytes from the source, hex encoded.
func (h *Handlers) Bytes(c *gin.Context) {
	const maxBytes = 4096

	sizeVar := c.DefaultQuery("size", "32")
	size, err := strconv.Atoi(sizeVar)
	if err != nil || size < 1 || size > maxBytes {
		responder{c}.err(http.StatusBadRequest,
			fmt.Sprintf("Size must be an integer between 1 and %d.", maxBytes))
		return
	}

	h.handleSource(c, func() (string, gin.H, int, string) {
		buf := make([]byte, size)
		if err := h.src.Fill(buf); err != nil {
			if h.health != nil {
				h.health.Set(false, "error fetching random bytes: "+err.Error())
			}
			h.log.Error(err)
			return "", nil, http.StatusInternalServerError, "Error fetching random bytes."
		}

		hexStr := fmt.Sprintf("%x", buf)
		return hexStr, gin.H{"bytes": hexStr, "size": size}, 0, ""
	})
}

// Encrypt XORs the supplied data against a keystream drawn from the
// source and returns the ciphertext, hex encoded. Toy cipher; see the
// cipher package notes.
func (h *Handlers) Encrypt(c *gin.Context) {
	const maxData = 4096

	data := c.Query("data")
	if data == "" {
		responder{c}.err(http.StatusBadRequest, "Missing data parameter.")
		return
	}
	if len(data) > maxData {
		responder{c}.err(http.StatusBadRequest,
			fmt.Sprintf("Data must not exceed %d bytes.", maxData))
		return
	}

	h.handleSource(c, func() (string, gin.H, int, string) {
		out, err := cipher.New(h.src).Process([]byte(data))
		if err != nil {
			if h.health != nil {
				h.health.Set(false, "error generating keystream: "+err.Error())
			}
			h.log.Error(err)
			return "", nil, http.StatusInternalServerError, "Error generating keystream."
		}

		hexStr := fmt.Sprintf("%x", out)
		return hexStr, gin.H{"ciphertext": hexStr, "size": len(out)}, 0, ""
	})
}

// Benchmark measures source throughput across a few iterations.
func (h *Handlers) Benchmark(c *gin.Context) {
	const maxIterations = 32

	bytesPer, err := strconv.Atoi(c.DefaultQuery("bytes", "1048576"))
	if err != nil || bytesPer < 1 || bytesPer > h.maxSampleSize {
		responder{c}.err(http.StatusBadRequest,
			fmt.Sprintf("Bytes must be an integer between 1 and %d.", h.maxSampleSize))
		return
	}

	iters, err := strconv.Atoi(c.DefaultQuery("iterations", "5"))
	if err != nil || iters < 1 || iters > maxIterations {
		responder{c}.err(http.StatusBadRequest,
			fmt.Sprintf("Iterations must be an integer between 1 and %d.", maxIterations))
		return
	}

	h.handleSource(c, func() (string, gin.H, int, string) {
		result, err := bench.RunAvg(h.src, bytesPer, iters)
		if err != nil {
			if h.health != nil {
				h.health.Set(false, "error sampling source: "+err.Error())
			}
			h.log.Errorw("benchmark failed", "bytes", bytesPer, "iterations", iters, "error", err)
			return "", nil, http.StatusInternalServerError, "Error sampling entropy source."
		}

		text := fmt.Sprintf("Throughput: %.2f MB/s (stddev %.2f)\nLatency: %.3f us/byte\nGenerated: %d bytes in %.2fs",
			result.ThroughputMBps, result.StdDevMBps, result.LatencyMicros,
			result.Bytes, result.Elapsed.Seconds())
		return text, gin.H{"benchmark": result}, 0, ""
	})
}

func (h *Handlers) Health(c *gin.Context) {
	if h.health == nil {
		responder{c}.err(http.StatusServiceUnavailable, "UNHEALTHY: missing health monitor")
		return
	}

	ok, msg, t := h.health.Snapshot()
	if ok {
		responder{c}.ok(
			fmt.Sprintf("OK (last checked %s)", t.Format(time.RFC3339)),
			gin.H{"ok": true, "last_checked": t.Format(time.RFC3339)},
			"health-check",
		)
		return
	}

	responder{c}.err(http.StatusServiceUnavailable,
		fmt.Sprintf("UNHEALTHY: %s (last checked %s)", msg, t.Format(time.RFC3339)))
}
