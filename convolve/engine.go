// SPDX-License-Identifier: EPL-2.0

package convolve

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// rowsPerCheck is how many outer iterations run between context checks.
const rowsPerCheck = 256

// ProgressFunc receives the completed and total outer iterations. It is
// called at every tenth of the work and once at completion.
type ProgressFunc func(done, total int)

type Option func(*Engine)

// WithWorkers sets the number of goroutines used for accumulation. One (the
// default) selects the serial path; zero or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		e.workers = n
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) { e.progress = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine convolves signals. It holds configuration only and may be shared.
type Engine struct {
	workers  int
	progress ProgressFunc
	logger   *slog.Logger
}

func New(opts ...Option) *Engine {
	e := &Engine{
		workers: 1,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Workers reports the configured worker count.
func (e *Engine) Workers() int { return e.workers }

// Convolve returns the rescaled convolution of x and h. Neither input is
// modified. A cancelled ctx aborts accumulation and returns ctx.Err().
func (e *Engine) Convolve(ctx context.Context, x, h []float64) ([]float64, Stats, error) {
	if err := checkFinite("signal", x); err != nil {
		return nil, Stats{}, err
	}
	if err := checkFinite("impulse", h); err != nil {
		return nil, Stats{}, err
	}

	start := time.Now()

	y, err := e.accumulate(ctx, x, h)
	if err != nil {
		return nil, Stats{}, err
	}

	st := Rescale(y)

	e.logger.Debug("convolution finished",
		slog.Int("signal_len", len(x)),
		slog.Int("impulse_len", len(h)),
		slog.Int("output_len", len(y)),
		slog.Int("workers", e.workers),
		slog.Duration("elapsed", time.Since(start)),
		slog.Any("rescale", st),
	)

	return y, st, nil
}

func (e *Engine) accumulate(ctx context.Context, x, h []float64) ([]float64, error) {
	size := OutputLen(len(x), len(h))
	y := make([]float64, size)
	if size == 0 {
		return y, ctx.Err()
	}

	if e.workers > 1 && size > 1 {
		return y, e.parallel(ctx, x, h, y)
	}

	return y, e.serial(ctx, x, h, y)
}

func (e *Engine) serial(ctx context.Context, x, h, y []float64) error {
	rep := newReporter(e.progress, len(x))

	for n, xn := range x {
		if n%rowsPerCheck == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		// The explicit conversion rounds the product, so no FMA is fused
		// and both paths stay bit-identical on every architecture.
		row := y[n : n+len(h)]
		for m, hm := range h {
			row[m] += float64(xn * hm)
		}

		rep.add(1)
	}

	return nil
}

// parallel computes y output-side. Each y[p] sums x[n]*h[p-n] for n
// ascending, matching the order in which serial adds the same products.
func (e *Engine) parallel(ctx context.Context, x, h, y []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	spans := min(e.workers, len(y))
	span := (len(y) + spans - 1) / spans
	rep := newReporter(e.progress, len(y))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for lo := 0; lo < len(y); lo += span {
		hi := min(lo+span, len(y))

		g.Go(func() error {
			pending := 0
			for p := lo; p < hi; p++ {
				if pending == rowsPerCheck {
					if err := gctx.Err(); err != nil {
						return err
					}
					rep.add(pending)
					pending = 0
				}

				nLo := max(0, p-len(h)+1)
				nHi := min(p, len(x)-1)

				var acc float64
				for n := nLo; n <= nHi; n++ {
					acc += float64(x[n] * h[p-n])
				}
				y[p] = acc
				pending++
			}
			rep.add(pending)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

// reporter turns a running count into at most ten progress callbacks.
type reporter struct {
	fn    ProgressFunc
	total int

	mtx  sync.Mutex
	done int
	last int // last decile reported
}

func newReporter(fn ProgressFunc, total int) *reporter {
	return &reporter{fn: fn, total: total}
}

func (r *reporter) add(n int) {
	if r.fn == nil || r.total == 0 {
		return
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.done += n
	if decile := r.done * 10 / r.total; decile > r.last {
		r.last = decile
		r.fn(r.done, r.total)
	}
}

// OutputLen is the length of the full linear convolution of n and m samples.
func OutputLen(n, m int) int {
	if n == 0 || m == 0 {
		return 0
	}

	return n + m - 1
}

// Direct returns the raw convolution of x and h without rescaling.
func Direct(x, h []float64) []float64 {
	y, _ := New().accumulate(context.Background(), x, h)
	return y
}

// Convolve is the serial engine with default options.
func Convolve(x, h []float64) []float64 {
	y := Direct(x, h)
	Rescale(y)

	return y
}

func checkFinite(name string, s []float64) error {
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s sample %d: %w", name, i, ErrNonFinite)
		}
	}

	return nil
}
