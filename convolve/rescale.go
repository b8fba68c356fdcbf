// SPDX-License-Identifier: EPL-2.0

package convolve

import (
	"log/slog"
	"math"
)

const (
	// Headroom is added to a dominant positive peak before dividing.
	Headroom = 1e-6
	// Ceiling is the largest value allowed to survive the rescale unchanged.
	Ceiling = 0.999999
	// ClampStep is subtracted from values above Ceiling.
	ClampStep = 0.000001
)

// Stats describes a rescale. Highest and Lowest are taken before division and
// start from zero, so a one-sided signal reports zero for the other side.
type Stats struct {
	Highest    float64
	Lowest     float64
	OutOfRange int // samples with |v| > 1 before division
	Divisor    float64
	Scaled     bool
	Clamped    int // samples pulled down after division
}

func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("highest", s.Highest),
		slog.Float64("lowest", s.Lowest),
		slog.Int("out_of_range", s.OutOfRange),
		slog.Float64("divisor", s.Divisor),
		slog.Bool("scaled", s.Scaled),
		slog.Int("clamped", s.Clamped),
	)
}

// Rescale normalizes y in place by its dominant extreme and returns what it
// did. An empty or all-zero y is left untouched.
func Rescale(y []float64) Stats {
	var st Stats
	if len(y) == 0 {
		return st
	}

	for _, v := range y {
		if v > st.Highest {
			st.Highest = v
		}
		if v < st.Lowest {
			st.Lowest = v
		}
		if v > 1 || v < -1 {
			st.OutOfRange++
		}
	}

	if st.Highest > math.Abs(st.Lowest) {
		st.Divisor = st.Highest + Headroom
	} else {
		st.Divisor = math.Abs(st.Lowest)
	}

	if st.Divisor == 0 {
		return st
	}

	st.Scaled = true
	for i := range y {
		v := y[i] / st.Divisor
		if v > Ceiling {
			v -= ClampStep
			st.Clamped++
		}
		y[i] = v
	}

	return st
}
