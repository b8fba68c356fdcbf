// SPDX-License-Identifier: EPL-2.0

package diag

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_Float(t *testing.T) {
	t.Parallel()

	s := Summarize([]float64{0.5, -1.5, 1, 2}, NormalizedLimit)

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, -1.5, s.Min, 0)
	assert.InDelta(t, 2.0, s.Max, 0)
	assert.InDelta(t, 0.5, s.Mean, 1e-15)
	assert.InDelta(t, math.Sqrt((0.25+2.25+1+4)/4), s.RMS, 1e-15)
	assert.Equal(t, 2, s.Over)
}

func TestSummarize_Int16Rails(t *testing.T) {
	t.Parallel()

	s := Summarize([]int16{math.MinInt16, 0, 100, math.MaxInt16, math.MaxInt16 - 1}, RailLimit)

	assert.InDelta(t, math.MinInt16, s.Min, 0)
	assert.InDelta(t, math.MaxInt16, s.Max, 0)
	assert.Equal(t, 2, s.Over)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	s := Summarize([]float32(nil), NormalizedLimit)

	assert.Equal(t, Summary{Limit: NormalizedLimit}, s)
}

func TestSummary_LogValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	log.Info("dry", slog.Any("summary", Summarize([]int16{-2, 2}, RailLimit)))

	out := buf.String()
	assert.Contains(t, out, "summary.count=2")
	assert.Contains(t, out, "summary.min=-2")
	assert.Contains(t, out, "summary.over=0")
}

func BenchmarkSummarize(b *testing.B) {
	s := make([]float64, 1<<16)
	for i := range s {
		s[i] = math.Sin(float64(i))
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = Summarize(s, NormalizedLimit)
	}
}
