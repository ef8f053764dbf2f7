package strategy

import (
	"time"

	"github.com/montanaflynn/stats"
)

type ExecutionSummary struct {
	Count  int     `json:"count"`
	MeanUs float64 `json:"mean_us"`
	P99Us  float64 `json:"p99_us"`
	MaxUs  float64 `json:"max_us"`
}

// ExecutionStats keeps a window of recent run times in microseconds.
type ExecutionStats struct {
	window  int
	samples []float64
	count   int
}

func NewExecutionStats(window int) *ExecutionStats {
	return &ExecutionStats{window: window}
}

func (e *ExecutionStats) Add(d time.Duration) {
	e.count++
	e.samples = append(e.samples, float64(d.Microseconds()))
	if len(e.samples) > e.window {
		e.samples = e.samples[1:]
	}
}

func (e *ExecutionStats) Summary() ExecutionSummary {
	summary := ExecutionSummary{Count: e.count}
	if len(e.samples) == 0 {
		return summary
	}

	summary.MeanUs, _ = stats.Mean(e.samples)
	summary.P99Us, _ = stats.Percentile(e.samples, 99)
	summary.MaxUs, _ = stats.Max(e.samples)

	return summary
}
