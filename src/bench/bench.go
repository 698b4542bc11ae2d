// Package bench measures entropy source throughput.
package bench

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/lost-woods/entropy/src/entropy"
)

type Result struct {
	ThroughputMBps float64       `json:"throughput_mbps"`
	StdDevMBps     float64       `json:"stddev_mbps"`
	LatencyMicros  float64       `json:"latency_us_per_byte"`
	Bytes          int           `json:"bytes_generated"`
	Elapsed        time.Duration `json:"elapsed_ns"`
}

// Run fills a single buffer of totalBytes and measures wall-clock
// throughput and per-byte latency.
func Run(src entropy.Source, totalBytes int) (Result, error) {
	buf := make([]byte, totalBytes)

	start := time.Now()
	if err := src.Fill(buf); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	secs := elapsed.Seconds()
	return Result{
		ThroughputMBps: float64(totalBytes) / secs / 1e6,
		LatencyMicros:  secs * 1e6 / float64(totalBytes),
		Bytes:          totalBytes,
		Elapsed:        elapsed,
	}, nil
}

// RunAvg repeats Run and reports the mean and standard deviation of the
// per-iteration throughput, which smooths out scheduler noise on fast
// sources.
func RunAvg(src entropy.Source, bytesPerIteration, iterations int) (Result, error) {
	throughputs := make([]float64, 0, iterations)
	latencies := make([]float64, 0, iterations)
	var elapsed time.Duration

	for i := 0; i < iterations; i++ {
		r, err := Run(src, bytesPerIteration)
		if err != nil {
			return Result{}, err
		}
		throughputs = append(throughputs, r.ThroughputMBps)
		latencies = append(latencies, r.LatencyMicros)
		elapsed += r.Elapsed
	}

	return Result{
		ThroughputMBps: stat.Mean(throughputs, nil),
		StdDevMBps:     stat.StdDev(throughputs, nil),
		LatencyMicros:  stat.Mean(latencies, nil),
		Bytes:          bytesPerIteration * iterations,
		Elapsed:        elapsed,
	}, nil
}
