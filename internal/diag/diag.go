// SPDX-License-Identifier: EPL-2.0

// Package diag summarizes sample buffers for diagnostic logging.
package diag

import (
	"log/slog"
	"math"
)

// Sample is any sample representation the pipeline carries.
type Sample interface {
	~int16 | ~float32 | ~float64
}

// Summary is a one-pass description of a buffer. Over counts samples whose
// magnitude exceeds Limit.
type Summary struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
	RMS   float64
	Limit float64
	Over  int
}

// Summarize walks s once. An empty s yields a zero Summary carrying limit.
func Summarize[T Sample](s []T, limit float64) Summary {
	sum := Summary{Count: len(s), Limit: limit}
	if len(s) == 0 {
		return sum
	}

	var total, squares float64
	sum.Min, sum.Max = math.Inf(1), math.Inf(-1)

	for _, v := range s {
		f := float64(v)
		sum.Min = min(sum.Min, f)
		sum.Max = max(sum.Max, f)
		total += f
		squares += f * f
		if math.Abs(f) > limit {
			sum.Over++
		}
	}

	sum.Mean = total / float64(len(s))
	sum.RMS = math.Sqrt(squares / float64(len(s)))

	return sum
}

func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("count", s.Count),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("mean", s.Mean),
		slog.Float64("rms", s.RMS),
		slog.Int("over", s.Over),
	)
}

const (
	// NormalizedLimit flags floats outside the nominal [-1, 1] range.
	NormalizedLimit = 1.0
	// RailLimit flags int16 samples sitting on either rail.
	RailLimit = math.MaxInt16 - 1
)
