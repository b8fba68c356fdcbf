// SPDX-License-Identifier: EPL-2.0

package convolve

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSignal(r *rand.Rand, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = r.Float64()*2 - 1
	}

	return s
}

func TestOutputLen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, m, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 0, 0},
		{1, 1, 1},
		{4, 2, 5},
		{1000, 300, 1299},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputLen(tt.n, tt.m), "OutputLen(%d, %d)", tt.n, tt.m)
	}
}

func TestConvolve_LengthLaw(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for _, sz := range [][2]int{{1, 1}, {1, 9}, {9, 1}, {17, 5}, {256, 64}} {
		y := Convolve(randomSignal(r, sz[0]), randomSignal(r, sz[1]))
		assert.Len(t, y, sz[0]+sz[1]-1)
	}
}

func TestConvolve_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Convolve(nil, []float64{1, 2}))
	assert.Empty(t, Convolve([]float64{1, 2}, nil))

	y, st, err := New().Convolve(context.Background(), []float64{}, []float64{0.5})
	require.NoError(t, err)
	assert.NotNil(t, y)
	assert.Empty(t, y)
	assert.False(t, st.Scaled)
}

// A lone unit impulse followed by a two-tap response.
func TestConvolve_UnitImpulse(t *testing.T) {
	t.Parallel()

	x := []float64{1, 0, 0, 0}
	h := []float64{0.5, 0.25}

	assert.Equal(t, []float64{0.5, 0.25, 0, 0, 0}, Direct(x, h))

	y, st, err := New().Convolve(context.Background(), x, h)
	require.NoError(t, err)

	div := 0.5 + Headroom
	assert.InDelta(t, div, st.Divisor, 1e-15)
	assert.InDeltaSlice(t, []float64{0.5 / div, 0.25 / div, 0, 0, 0}, y, 1e-12)
	assert.Less(t, y[0], 1.0)
	assert.Zero(t, st.Clamped)
}

func TestConvolve_IdentityImpulse(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(3, 4))
	x := randomSignal(r, 500)

	assert.Equal(t, x, Direct(x, []float64{1}))

	y, st, err := New().Convolve(context.Background(), x, []float64{1})
	require.NoError(t, err)
	require.Len(t, y, len(x))
	for i := range x {
		assert.InDelta(t, x[i]/st.Divisor, y[i], 2e-6)
	}
}

func TestConvolve_LinearInInput(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(5, 6))
	x := randomSignal(r, 300)
	h := randomSignal(r, 40)

	scaled := make([]float64, len(x))
	for i, v := range x {
		scaled[i] = 3 * v
	}

	base := Direct(x, h)
	tripled := Direct(scaled, h)
	for i := range base {
		assert.InDelta(t, 3*base[i], tripled[i], 1e-12)
	}

	// After rescale only the headroom term separates the two.
	assert.InDeltaSlice(t, Convolve(x, h), Convolve(scaled, h), 1e-5)
}

func TestConvolve_RangeGuarantee(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(7, 8))
	for range 20 {
		x := randomSignal(r, 1+r.IntN(400))
		h := randomSignal(r, 1+r.IntN(100))
		for i := range h {
			h[i] *= 50
		}

		for _, v := range Convolve(x, h) {
			require.Less(t, v, 1.0)
			require.GreaterOrEqual(t, v, -1.0)
		}
	}
}

func TestConvolve_ZeroImpulse(t *testing.T) {
	t.Parallel()

	y, st, err := New().Convolve(context.Background(), []float64{0.1, -0.7, 0.3}, make([]float64, 4))
	require.NoError(t, err)

	assert.Equal(t, make([]float64, 6), y)
	assert.False(t, st.Scaled)
	assert.Zero(t, st.Divisor)
}

func TestConvolve_DoesNotModifyInputs(t *testing.T) {
	t.Parallel()

	x := []float64{0.5, -0.5, 0.25}
	h := []float64{2, 1}
	xc := append([]float64{}, x...)
	hc := append([]float64{}, h...)

	_, _, err := New(WithWorkers(3)).Convolve(context.Background(), x, h)
	require.NoError(t, err)

	assert.Equal(t, xc, x)
	assert.Equal(t, hc, h)
}

func TestEngine_ParallelMatchesSerial(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(9, 10))
	x := randomSignal(r, 3000)
	h := randomSignal(r, 701)

	want, wantStats, err := New().Convolve(context.Background(), x, h)
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 3, 8, 5000} {
		got, gotStats, err := New(WithWorkers(workers)).Convolve(context.Background(), x, h)
		require.NoError(t, err)

		assert.Equal(t, want, got, "workers=%d", workers)
		assert.Equal(t, wantStats, gotStats, "workers=%d", workers)
	}
}

func TestWithWorkers_Default(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, New().Workers())
	assert.Equal(t, 4, New(WithWorkers(4)).Workers())
	assert.GreaterOrEqual(t, New(WithWorkers(0)).Workers(), 1)
}

func TestEngine_Progress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		workers int
		n, m    int
		total   int
	}{
		{name: "serial", workers: 1, n: 100, m: 8, total: 100},
		{name: "serial short", workers: 1, n: 3, m: 8, total: 3},
		{name: "parallel", workers: 4, n: 2000, m: 100, total: 2099},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls [][2]int
			e := New(WithWorkers(tt.workers), WithProgress(func(done, total int) {
				calls = append(calls, [2]int{done, total})
			}))

			_, _, err := e.Convolve(context.Background(), make([]float64, tt.n), make([]float64, tt.m))
			require.NoError(t, err)

			require.NotEmpty(t, calls)
			assert.LessOrEqual(t, len(calls), 10)
			assert.Equal(t, [2]int{tt.total, tt.total}, calls[len(calls)-1])
			for i := 1; i < len(calls); i++ {
				assert.Greater(t, calls[i][0], calls[i-1][0])
			}
		})
	}
}

func TestEngine_ProgressDoesNotAlterResult(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(11, 12))
	x := randomSignal(r, 400)
	h := randomSignal(r, 30)

	plain, _, err := New().Convolve(context.Background(), x, h)
	require.NoError(t, err)

	reported, _, err := New(WithProgress(func(int, int) {})).Convolve(context.Background(), x, h)
	require.NoError(t, err)

	assert.Equal(t, plain, reported)
}

func TestEngine_Cancelled(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 4} {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		y, _, err := New(WithWorkers(workers)).Convolve(ctx, make([]float64, 100), make([]float64, 10))
		require.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
		assert.Nil(t, y)
	}
}

func TestEngine_CancelledMidway(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := New(WithProgress(func(int, int) { cancel() }))

	_, _, err := e.Convolve(ctx, make([]float64, 10000), make([]float64, 4))
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_RejectsNonFinite(t *testing.T) {
	t.Parallel()

	_, _, err := New().Convolve(context.Background(), []float64{0, math.NaN()}, []float64{1})
	require.ErrorIs(t, err, ErrNonFinite)

	_, _, err = New().Convolve(context.Background(), []float64{0}, []float64{math.Inf(-1)})
	require.ErrorIs(t, err, ErrNonFinite)
}

func BenchmarkEngine_Serial(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 1))
	x := randomSignal(r, 8000)
	h := randomSignal(r, 2000)
	e := New()

	b.ReportAllocs()
	for b.Loop() {
		_, _, _ = e.Convolve(context.Background(), x, h)
	}
}

func BenchmarkEngine_Parallel(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 1))
	x := randomSignal(r, 8000)
	h := randomSignal(r, 2000)
	e := New(WithWorkers(0))

	b.ReportAllocs()
	for b.Loop() {
		_, _, _ = e.Convolve(context.Background(), x, h)
	}
}
